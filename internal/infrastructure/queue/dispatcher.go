package queue

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	previewLength  = 80
)

// Dispatcher relays bus events to a NotificationSink on a fixed set of
// workers. Notifications are sharded by recipient, so each user receives
// them in publish order.
type Dispatcher struct {
	workers []chan ports.Notification
	sink    ports.NotificationSink
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.NotificationSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Attach subscribes the dispatcher to message and status events. The
// returned func detaches it.
func (d *Dispatcher) Attach(sub ports.EventSubscriber) func() {
	offMsg := sub.Subscribe(domain.EventMessageSent, d.handle)
	offStatus := sub.Subscribe(domain.EventUserStatusChanged, d.handle)
	return func() {
		offMsg()
		offStatus()
	}
}

func (d *Dispatcher) handle(_ context.Context, e domain.Event) {
	n, ok := notificationFor(e)
	if !ok {
		return
	}
	d.Enqueue(n)
}

// Enqueue hands n to the worker responsible for its recipient. It never
// blocks the publisher: when that worker's buffer is full the notification
// is dropped and false is returned.
func (d *Dispatcher) Enqueue(n ports.Notification) bool {
	select {
	case d.workers[d.shardIndex(n.UserID)] <- n:
		return true
	default:
		d.log.Warn().Str("user_id", n.UserID).Str("kind", string(n.Kind)).Msg("relay queue full, notification dropped")
		return false
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Deliver(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("user_id", n.UserID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}

func notificationFor(e domain.Event) (ports.Notification, bool) {
	switch ev := e.(type) {
	case domain.MessageSent:
		return ports.Notification{
			UserID:    ev.Message.ReceiverID,
			Kind:      domain.EventMessageSent,
			Title:     fmt.Sprintf("New message from %s", ev.Message.SenderDisplayName),
			Body:      preview(ev.Message.Text),
			Reference: ev.Message.ConversationID,
		}, true
	case domain.UserStatusChanged:
		return ports.Notification{
			UserID:    ev.User.ID,
			Kind:      domain.EventUserStatusChanged,
			Title:     "Application status updated",
			Body:      fmt.Sprintf("Your status is now %s", ev.User.Status),
			Reference: ev.User.AssignedRecruiterID,
		}, true
	}
	return ports.Notification{}, false
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= previewLength {
		return text
	}
	return string(r[:previewLength]) + "…"
}
