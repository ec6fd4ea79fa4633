package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// ConversationService stores direct messages and the per-reader unread
// counters kept alongside them.
type ConversationService struct {
	users    ports.UserRepository
	messages ports.MessageRepository
	events   ports.EventPublisher
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

func NewConversationService(users ports.UserRepository, messages ports.MessageRepository, events ports.EventPublisher, log zerolog.Logger) *ConversationService {
	return &ConversationService{
		users:    users,
		messages: messages,
		events:   events,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// ConversationID is domain.ConversationID, exposed for transport callers.
func (s *ConversationService) ConversationID(a, b string) string {
	return domain.ConversationID(a, b)
}

// GetMessages returns the conversation between userA and userB in send
// order. Argument order does not matter.
func (s *ConversationService) GetMessages(ctx context.Context, userA, userB string) ([]*domain.Message, error) {
	msgs, err := s.messages.ListByConversation(ctx, domain.ConversationID(userA, userB))
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	return msgs, nil
}

// Send stores a message from senderID to receiverID and publishes
// MessageSent. Text is stored as given.
func (s *ConversationService) Send(ctx context.Context, senderID, receiverID, text string) (*domain.Message, error) {
	sender, err := s.users.FindByID(ctx, senderID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("send: %w: %s", domain.ErrSenderNotFound, senderID)
	}
	if err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("send: %w: %s", domain.ErrReceiverNotFound, receiverID)
		}
		return nil, fmt.Errorf("send: %w", err)
	}

	msg := &domain.Message{
		ID:                s.newID(),
		ConversationID:    domain.ConversationID(senderID, receiverID),
		SenderID:          senderID,
		ReceiverID:        receiverID,
		Text:              text,
		Timestamp:         s.now().UTC().Truncate(time.Millisecond),
		SenderDisplayName: sender.Username,
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}

	s.events.Publish(ctx, domain.MessageSent{Message: *msg})

	s.log.Debug().
		Str("conversation_id", msg.ConversationID).
		Str("sender_id", senderID).
		Msg("message sent")

	return msg, nil
}

// MarkRead acknowledges everything partnerID has sent to readerID so far.
func (s *ConversationService) MarkRead(ctx context.Context, readerID, partnerID string) error {
	if err := s.messages.ResetUnread(ctx, domain.ConversationID(readerID, partnerID), readerID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (s *ConversationService) UnreadCount(ctx context.Context, userID, partnerID string) (int, error) {
	n, err := s.messages.UnreadCount(ctx, domain.ConversationID(userID, partnerID), userID)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return n, nil
}

// ChatPartners lists who userID can talk to: a recruiter's assigned
// candidates, or a candidate's assigned recruiter.
func (s *ConversationService) ChatPartners(ctx context.Context, userID string) ([]ports.ChatPartner, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("chat partners: %w", err)
	}

	var partners []*domain.User
	switch {
	case user.IsRecruiter():
		partners, err = s.users.List(ctx, ports.UserFilter{Role: domain.RoleCandidate, AssignedRecruiterID: userID})
		if err != nil {
			return nil, fmt.Errorf("chat partners: %w", err)
		}
	case user.AssignedRecruiterID != "":
		recruiter, err := assignedRecruiter(ctx, s.users, user)
		if err != nil {
			return nil, fmt.Errorf("chat partners: %w", err)
		}
		partners = []*domain.User{recruiter}
	}

	out := make([]ports.ChatPartner, 0, len(partners))
	for _, p := range partners {
		convID := domain.ConversationID(userID, p.ID)
		unread, err := s.messages.UnreadCount(ctx, convID, userID)
		if err != nil {
			return nil, fmt.Errorf("chat partners: %w", err)
		}
		pub := p.Public()
		out = append(out, ports.ChatPartner{User: &pub, ConversationID: convID, Unread: unread})
	}
	return out, nil
}

var _ ports.ConversationService = (*ConversationService)(nil)
