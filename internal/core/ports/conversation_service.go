package ports

import (
	"context"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

// ChatPartner is a user the caller can talk to plus the caller's unread
// count in that conversation.
type ChatPartner struct {
	User           *domain.User `json:"user"`
	ConversationID string       `json:"conversation_id"`
	Unread         int          `json:"unread"`
}

// ConversationService stores and retrieves direct messages.
type ConversationService interface {
	GetMessages(ctx context.Context, userA, userB string) ([]*domain.Message, error)
	Send(ctx context.Context, senderID, receiverID, text string) (*domain.Message, error)
	MarkRead(ctx context.Context, readerID, partnerID string) error
	UnreadCount(ctx context.Context, userID, partnerID string) (int, error)
	ChatPartners(ctx context.Context, userID string) ([]ChatPartner, error)
}
