package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// MessageRepository implements ports.MessageRepository over the "messages"
// and "unread" records.
type MessageRepository struct {
	mu            sync.RWMutex
	store         ports.KeyValueStore
	conversations map[string][]*domain.Message
	unread        map[string]map[string]int // conversation id -> receiver id -> count
	log           zerolog.Logger
}

// NewMessageRepository loads the messages and unread records from store.
func NewMessageRepository(ctx context.Context, store ports.KeyValueStore, log zerolog.Logger) *MessageRepository {
	r := &MessageRepository{
		store:         store,
		conversations: make(map[string][]*domain.Message),
		unread:        make(map[string]map[string]int),
		log:           log,
	}

	var records map[string][]messageRecord
	if load(ctx, store, ports.RecordMessages, &records, log) {
		for convID, list := range records {
			msgs := make([]*domain.Message, 0, len(list))
			for _, rec := range list {
				msgs = append(msgs, rec.toDomain(convID))
			}
			r.conversations[convID] = msgs
		}
	}

	var counters map[string]map[string]int
	if load(ctx, store, ports.RecordUnread, &counters, log) {
		for convID, byUser := range counters {
			for userID, n := range byUser {
				if n > 0 {
					r.bump(convID, userID, n)
				}
			}
		}
	}

	log.Info().Int("conversations", len(r.conversations)).Msg("messages table loaded")
	return r
}

func (r *MessageRepository) Append(ctx context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.conversations[m.ConversationID]
	if n := len(prev); n > 0 && m.Timestamp.Before(prev[n-1].Timestamp) {
		m.Timestamp = prev[n-1].Timestamp
	}

	cp := *m
	r.conversations[m.ConversationID] = append(prev, &cp)
	r.bump(m.ConversationID, m.ReceiverID, 1)

	if err := r.flushMessages(ctx); err != nil {
		if len(prev) == 0 {
			delete(r.conversations, m.ConversationID)
		} else {
			r.conversations[m.ConversationID] = prev
		}
		r.bump(m.ConversationID, m.ReceiverID, -1)
		return fmt.Errorf("persist messages: %w", err)
	}
	if err := r.flushUnread(ctx); err != nil {
		r.log.Warn().Err(err).Str("conversation_id", m.ConversationID).Msg("failed to persist unread counters")
	}
	return nil
}

func (r *MessageRepository) ListByConversation(_ context.Context, conversationID string) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.conversations[conversationID]
	out := make([]*domain.Message, 0, len(list))
	for _, m := range list {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MessageRepository) UnreadCount(_ context.Context, conversationID, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.unread[conversationID][userID], nil
}

func (r *MessageRepository) ResetUnread(ctx context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.unread[conversationID][userID]
	if n == 0 {
		return nil
	}
	r.bump(conversationID, userID, -n)
	if err := r.flushUnread(ctx); err != nil {
		r.bump(conversationID, userID, n)
		return fmt.Errorf("persist unread: %w", err)
	}
	return nil
}

// bump adjusts a counter, dropping entries that reach zero.
func (r *MessageRepository) bump(conversationID, userID string, delta int) {
	byUser := r.unread[conversationID]
	if byUser == nil {
		byUser = make(map[string]int)
		r.unread[conversationID] = byUser
	}
	byUser[userID] += delta
	if byUser[userID] <= 0 {
		delete(byUser, userID)
	}
	if len(byUser) == 0 {
		delete(r.unread, conversationID)
	}
}

func (r *MessageRepository) flushMessages(ctx context.Context) error {
	records := make(map[string][]messageRecord, len(r.conversations))
	for convID, list := range r.conversations {
		recs := make([]messageRecord, 0, len(list))
		for _, m := range list {
			recs = append(recs, toMessageRecord(m))
		}
		records[convID] = recs
	}
	return save(ctx, r.store, ports.RecordMessages, records)
}

func (r *MessageRepository) flushUnread(ctx context.Context) error {
	return save(ctx, r.store, ports.RecordUnread, r.unread)
}
