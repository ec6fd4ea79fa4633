package ports

import (
	"context"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

// EventHandler receives published events.
type EventHandler func(ctx context.Context, e domain.Event)

// EventPublisher delivers an event to every current subscriber of its kind
// before returning.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.Event)
}

// EventSubscriber registers handlers. The returned func removes exactly that
// registration and may be called any number of times.
type EventSubscriber interface {
	Subscribe(kind domain.EventKind, h EventHandler) (unsubscribe func())
}

// Notification is the relay form of a bus event, addressed to one user.
type Notification struct {
	UserID    string           `json:"user_id"`
	Kind      domain.EventKind `json:"kind"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Reference string           `json:"reference,omitempty"`
}

// NotificationSink forwards notifications out of process.
type NotificationSink interface {
	Deliver(ctx context.Context, n Notification) error
}
