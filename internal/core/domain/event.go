package domain

// EventKind names a category of notification on the bus.
type EventKind string

const (
	EventMessageSent       EventKind = "MessageSent"
	EventUserStatusChanged EventKind = "UserStatusChanged"
)

// Event is anything that can be published on the bus.
type Event interface {
	Kind() EventKind
}

// MessageSent is emitted after a message is stored.
type MessageSent struct {
	Message Message
}

func (MessageSent) Kind() EventKind { return EventMessageSent }

// UserStatusChanged is emitted after a candidate's status is stored. User
// never carries the secret.
type UserStatusChanged struct {
	User User
}

func (UserStatusChanged) Kind() EventKind { return EventUserStatusChanged }
