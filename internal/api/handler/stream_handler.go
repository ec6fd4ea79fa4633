package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api/metrics"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

const (
	streamBuffer = 64
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = pongWait * 9 / 10
)

// streamFrame is one JSON frame pushed to a stream client.
type streamFrame struct {
	Type    domain.EventKind `json:"type"`
	Message *domain.Message  `json:"message,omitempty"`
	User    *domain.User     `json:"user,omitempty"`
}

// StreamHandler pushes bus events concerning the caller over a websocket.
type StreamHandler struct {
	events   ports.EventSubscriber
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewStreamHandler(events ports.EventSubscriber, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		events: events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is handled at the HTTP layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Stream
//
// @Summary      Live event stream (websocket)
// @Tags         stream
// @Security     BearerAuth
// @Success      101
// @Router       /v1/stream [get]
func (h *StreamHandler) Stream(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}

	// Subscribe before the handshake completes so no event published after
	// the client sees the upgrade is missed.
	frames := make(chan streamFrame, streamBuffer)
	relay := func(_ context.Context, e domain.Event) {
		f, ok := frameFor(me.ID, e)
		if !ok {
			return
		}
		select {
		case frames <- f:
		default:
			metrics.StreamDroppedTotal.Inc()
		}
	}
	offMsg := h.events.Subscribe(domain.EventMessageSent, relay)
	defer offMsg()
	offStatus := h.events.Subscribe(domain.EventUserStatusChanged, relay)
	defer offStatus()

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written an HTTP error.
		h.log.Debug().Err(err).Str("user_id", me.ID).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	metrics.StreamConnections.Inc()
	defer metrics.StreamConnections.Dec()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(4 * 1024)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			// Clients only send control frames; anything else is ignored.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return nil
		case f := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}

// frameFor converts e into a frame when it concerns userID: messages the
// user sent or received, and status changes on the user or on one of the
// user's candidates.
func frameFor(userID string, e domain.Event) (streamFrame, bool) {
	switch ev := e.(type) {
	case domain.MessageSent:
		if ev.Message.SenderID != userID && ev.Message.ReceiverID != userID {
			return streamFrame{}, false
		}
		m := ev.Message
		return streamFrame{Type: ev.Kind(), Message: &m}, true
	case domain.UserStatusChanged:
		if ev.User.ID != userID && ev.User.AssignedRecruiterID != userID {
			return streamFrame{}, false
		}
		u := ev.User.Public()
		return streamFrame{Type: ev.Kind(), User: &u}, true
	}
	return streamFrame{}, false
}
