// Package eventbus is the in-process publish/subscribe hub for chat events.
//
// Delivery is synchronous: Publish returns only after every handler
// registered for the event's kind has run, in the order they subscribed.
package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

type subscription struct {
	id      uint64
	kind    domain.EventKind
	handler ports.EventHandler
}

// Bus implements ports.EventPublisher and ports.EventSubscriber.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[domain.EventKind][]subscription
	log    zerolog.Logger
}

// New returns an empty Bus.
func New(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[domain.EventKind][]subscription),
		log:  log,
	}
}

// Subscribe registers h for events of the given kind.
func (b *Bus) Subscribe(kind domain.EventKind, h ports.EventHandler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, kind: kind, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(kind, id) })
	}
}

func (b *Bus) remove(kind domain.EventKind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[kind]
	for i, s := range list {
		if s.id != id {
			continue
		}
		// Copy instead of shifting in place: a Publish in progress may still
		// be ranging over the old slice.
		next := make([]subscription, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.subs, kind)
		} else {
			b.subs[kind] = next
		}
		return
	}
}

// Publish delivers e to the handlers subscribed to e.Kind() at the time of
// the call. A handler that panics is logged and skipped.
func (b *Bus) Publish(ctx context.Context, e domain.Event) {
	b.mu.Lock()
	handlers := b.subs[e.Kind()]
	b.mu.Unlock()

	for _, s := range handlers {
		b.deliver(ctx, s, e)
	}
}

// Subscribers returns the number of live registrations for kind.
func (b *Bus) Subscribers(kind domain.EventKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[kind])
}

func (b *Bus) deliver(ctx context.Context, s subscription, e domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().
				Err(fmt.Errorf("%v", r)).
				Str("kind", string(s.kind)).
				Uint64("subscription_id", s.id).
				Msg("event handler panicked")
		}
	}()
	s.handler(ctx, e)
}
