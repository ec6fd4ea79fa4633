package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrSenderNotFound = errors.New("sender not found")
var ErrReceiverNotFound = errors.New("receiver not found")
var ErrBulkIncomplete = errors.New("bulk send incomplete")

// Message is a single immutable chat entry between two users.
type Message struct {
	ID                string    `json:"id"`
	ConversationID    string    `json:"conversation_id"`
	SenderID          string    `json:"sender_id"`
	ReceiverID        string    `json:"receiver_id"`
	Text              string    `json:"text"`
	Timestamp         time.Time `json:"timestamp"`
	SenderDisplayName string    `json:"sender_display_name"`
}

// ConversationID derives the order-independent identifier of the
// conversation between a and b.
func ConversationID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}
