// Package snapshot keeps the chat tables in memory and mirrors each one to a
// ports.KeyValueStore as a single JSON document after every mutation.
//
// Loading is forgiving: a missing, unreadable or corrupt record starts the
// table empty instead of failing startup.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// userRecord is the persisted shape of a user. Unlike the API shape it
// carries the secret.
type userRecord struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	Role                string `json:"role"`
	Password            string `json:"password"`
	AssignedRecruiterID string `json:"assignedRecruiterId,omitempty"`
	Status              string `json:"status,omitempty"`
}

type messageRecord struct {
	ID                string `json:"id"`
	ConversationID    string `json:"conversationId"`
	SenderID          string `json:"senderId"`
	ReceiverID        string `json:"receiverId"`
	Text              string `json:"text"`
	Timestamp         int64  `json:"timestamp"` // unix milliseconds
	SenderDisplayName string `json:"senderDisplayName"`
}

func toUserRecord(u *domain.User) userRecord {
	return userRecord{
		ID:                  u.ID,
		Username:            u.Username,
		Role:                string(u.Role),
		Password:            u.Secret,
		AssignedRecruiterID: u.AssignedRecruiterID,
		Status:              string(u.Status),
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:                  r.ID,
		Username:            r.Username,
		Role:                domain.Role(r.Role),
		Secret:              r.Password,
		AssignedRecruiterID: r.AssignedRecruiterID,
		Status:              domain.CandidateStatus(r.Status),
	}
}

func toMessageRecord(m *domain.Message) messageRecord {
	return messageRecord{
		ID:                m.ID,
		ConversationID:    m.ConversationID,
		SenderID:          m.SenderID,
		ReceiverID:        m.ReceiverID,
		Text:              m.Text,
		Timestamp:         m.Timestamp.UnixMilli(),
		SenderDisplayName: m.SenderDisplayName,
	}
}

func (r messageRecord) toDomain(conversationID string) *domain.Message {
	return &domain.Message{
		ID:                r.ID,
		ConversationID:    conversationID,
		SenderID:          r.SenderID,
		ReceiverID:        r.ReceiverID,
		Text:              r.Text,
		Timestamp:         time.UnixMilli(r.Timestamp).UTC(),
		SenderDisplayName: r.SenderDisplayName,
	}
}

// load reads key into v. It reports false when the table should start empty.
func load(ctx context.Context, store ports.KeyValueStore, key string, v any, log zerolog.Logger) bool {
	raw, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, ports.ErrKeyNotFound):
		log.Debug().Str("record", key).Msg("no stored record, starting empty")
		return false
	case err != nil:
		log.Error().Err(err).Str("record", key).Msg("failed to read stored record, starting empty")
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Warn().Err(err).Str("record", key).Msg("stored record is corrupt, starting empty")
		return false
	}
	return true
}

func save(ctx context.Context, store ports.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, raw)
}
