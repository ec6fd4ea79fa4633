package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a KeyValueStore when a key was never written.
var ErrKeyNotFound = errors.New("key not found")

// Record keys written to the durable store.
const (
	RecordUsers    = "users"
	RecordMessages = "messages"
	RecordUnread   = "unread"
)

// KeyValueStore is the durable backing store. Values are opaque JSON
// documents; each write replaces the whole record.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
