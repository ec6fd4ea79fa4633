package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

const (
	defaultPrefix  = "chat.notify"
	streamName     = "CHAT_NOTIFICATIONS"
	publishTimeout = 5 * time.Second
)

// Config captures the settings for the JetStream publisher.
type Config struct {
	URL           string
	SubjectPrefix string
}

// Publisher implements ports.NotificationSink on NATS JetStream.
// Subject format: <prefix>.<user_id>
type Publisher struct {
	js     jetstream.JetStream
	nc     *nats.Conn
	prefix string
	log    zerolog.Logger
}

type envelope struct {
	ports.Notification
	SentAt time.Time `json:"sent_at"`
}

// NewPublisher connects to NATS and ensures the notification stream exists.
func NewPublisher(ctx context.Context, cfg Config, log zerolog.Logger) (*Publisher, error) {
	prefix := subjectPrefix(cfg.SubjectPrefix)

	nc, err := nats.Connect(cfg.URL, nats.Name("recruiter-chat"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream: %w", err)
	}

	streamCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(streamCtx, jetstream.StreamConfig{
		Name:      streamName,
		Subjects:  []string{prefix + ".>"},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   jetstream.FileStorage,
	})
	if err != nil {
		log.Warn().Err(err).Str("stream", streamName).Msg("failed to create stream (may already exist)")
	}

	return &Publisher{js: js, nc: nc, prefix: prefix, log: log}, nil
}

// Close closes the underlying connection.
func (p *Publisher) Close() {
	p.nc.Close()
}

// Ping reports whether the connection is up.
func (p *Publisher) Ping(_ context.Context) error {
	if !p.nc.IsConnected() {
		return fmt.Errorf("nats: %s", p.nc.Status())
	}
	return nil
}

func (p *Publisher) Deliver(ctx context.Context, n ports.Notification) error {
	data, err := json.Marshal(envelope{Notification: n, SentAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	subject := p.subject(n.UserID)
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if _, err := p.js.Publish(pubCtx, subject, data); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	p.log.Debug().Str("subject", subject).Str("kind", string(n.Kind)).Msg("notification published")
	return nil
}

func (p *Publisher) subject(userID string) string {
	return p.prefix + "." + userID
}

func subjectPrefix(raw string) string {
	prefix := strings.Trim(strings.TrimSpace(raw), ".")
	if prefix == "" {
		return defaultPrefix
	}
	return prefix
}
