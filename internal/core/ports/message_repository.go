package ports

import (
	"context"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

// MessageRepository owns the messages table and the unread counters kept
// alongside it.
type MessageRepository interface {
	// Append stores m at the end of its conversation and increments the
	// receiver's unread counter. m.Timestamp is raised to the latest
	// timestamp already in the conversation if it is older.
	Append(ctx context.Context, m *domain.Message) error
	// ListByConversation returns messages in insertion order, or an empty slice.
	ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error)
	UnreadCount(ctx context.Context, conversationID, userID string) (int, error)
	ResetUnread(ctx context.Context, conversationID, userID string) error
}
