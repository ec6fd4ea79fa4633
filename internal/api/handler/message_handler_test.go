package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

func TestMessageHandler_Send_UsesCallerAsSender(t *testing.T) {
	stub := &stubConversations{
		sendFn: func(_ context.Context, sender, receiver, text string) (*domain.Message, error) {
			if sender != "c1" || receiver != "r1" || text != "hello" {
				t.Fatalf("unexpected args: %s %s %s", sender, receiver, text)
			}
			return &domain.Message{
				ID: "m1", ConversationID: domain.ConversationID(sender, receiver),
				SenderID: sender, ReceiverID: receiver, Text: text,
				Timestamp: time.UnixMilli(1000).UTC(), SenderDisplayName: "carol",
			}, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newContext(http.MethodPost, "/v1/conversations/r1/messages", `{"text":"hello"}`)
	c.SetParamNames("partnerID")
	c.SetParamValues("r1")
	if err := h.Send(as(c, "c1", domain.RoleCandidate)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var msg domain.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if msg.ConversationID != "c1_r1" || msg.SenderDisplayName != "carol" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestMessageHandler_Send_Rejects(t *testing.T) {
	h := NewMessageHandler(&stubConversations{})

	c, _ := newContext(http.MethodPost, "/v1/conversations/r1/messages", `{"text":""}`)
	if code := httpCode(t, h.Send(as(c, "c1", domain.RoleCandidate))); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", code)
	}

	c, _ = newContext(http.MethodPost, "/v1/conversations/r1/messages", `{"text":"hi"}`)
	if code := httpCode(t, h.Send(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", code)
	}
}

func TestMessageHandler_Send_UnknownReceiver(t *testing.T) {
	stub := &stubConversations{
		sendFn: func(context.Context, string, string, string) (*domain.Message, error) {
			return nil, domain.ErrReceiverNotFound
		},
	}
	h := NewMessageHandler(stub)

	c, _ := newContext(http.MethodPost, "/v1/conversations/ghost/messages", `{"text":"hi"}`)
	c.SetParamNames("partnerID")
	c.SetParamValues("ghost")
	if err := h.Send(as(c, "c1", domain.RoleCandidate)); !errors.Is(err, domain.ErrReceiverNotFound) {
		t.Fatalf("expected ErrReceiverNotFound, got %v", err)
	}
}

func TestMessageHandler_List(t *testing.T) {
	stub := &stubConversations{
		messagesFn: func(_ context.Context, a, b string) ([]*domain.Message, error) {
			if a != "r1" || b != "c1" {
				t.Fatalf("unexpected args: %s %s", a, b)
			}
			return []*domain.Message{{ID: "m1"}, {ID: "m2"}}, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/conversations/c1/messages", "")
	c.SetParamNames("partnerID")
	c.SetParamValues("c1")
	if err := h.List(as(c, "r1", domain.RoleRecruiter)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var msgs []domain.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "m1" || msgs[1].ID != "m2" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
}

func TestMessageHandler_ReadAndUnread(t *testing.T) {
	var marked bool
	stub := &stubConversations{
		markReadFn: func(_ context.Context, reader, partner string) error {
			if reader != "r1" || partner != "c1" {
				t.Fatalf("unexpected args: %s %s", reader, partner)
			}
			marked = true
			return nil
		},
		unreadFn: func(context.Context, string, string) (int, error) {
			return 3, nil
		},
	}
	h := NewMessageHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/conversations/c1/unread", "")
	c.SetParamNames("partnerID")
	c.SetParamValues("c1")
	if err := h.Unread(as(c, "r1", domain.RoleRecruiter)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp unreadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Unread != 3 || resp.ConversationID != "c1_r1" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	c, rec = newContext(http.MethodPost, "/v1/conversations/c1/read", "")
	c.SetParamNames("partnerID")
	c.SetParamValues("c1")
	if err := h.MarkRead(as(c, "r1", domain.RoleRecruiter)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !marked || rec.Code != http.StatusOK {
		t.Fatalf("mark read not applied (code %d)", rec.Code)
	}
}
