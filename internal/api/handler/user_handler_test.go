package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

func TestUserHandler_ListCandidates_ScopedToCaller(t *testing.T) {
	dir := &stubDirectory{
		candidatesFn: func(_ context.Context, recruiterID string) ([]*domain.User, error) {
			if recruiterID != "r1" {
				t.Fatalf("expected caller id, got %s", recruiterID)
			}
			return []*domain.User{{ID: "c1", Username: "carol", Role: domain.RoleCandidate}}, nil
		},
	}
	h := NewUserHandler(dir, &stubConversations{})

	c, rec := newContext(http.MethodGet, "/v1/candidates", "")
	if err := h.ListCandidates(as(c, "r1", domain.RoleRecruiter)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var users []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 1 || users[0].ID != "c1" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	dir := &stubDirectory{
		getFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(dir, &stubConversations{})

	c, _ := newContext(http.MethodGet, "/v1/users/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	if err := h.GetUser(as(c, "r1", domain.RoleRecruiter)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_SetStatus(t *testing.T) {
	dir := &stubDirectory{
		setStatusFn: func(_ context.Context, candidateID string, status domain.CandidateStatus, recruiterID string) (*domain.User, error) {
			if candidateID != "c1" || status != domain.StatusSelected || recruiterID != "r1" {
				t.Fatalf("unexpected args: %s %s %s", candidateID, status, recruiterID)
			}
			return &domain.User{ID: "c1", Role: domain.RoleCandidate, Status: status, AssignedRecruiterID: "r1"}, nil
		},
	}
	h := NewUserHandler(dir, &stubConversations{})

	c, rec := newContext(http.MethodPut, "/v1/candidates/c1/status", `{"status":"SELECTED"}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.SetStatus(as(c, "r1", domain.RoleRecruiter)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user.Status != domain.StatusSelected {
		t.Fatalf("expected SELECTED, got %s", user.Status)
	}
}

func TestUserHandler_SetStatus_Invalid(t *testing.T) {
	h := NewUserHandler(&stubDirectory{}, &stubConversations{})

	c, _ := newContext(http.MethodPut, "/v1/candidates/c1/status", `{"status":"HIRED"}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if code := httpCode(t, h.SetStatus(as(c, "r1", domain.RoleRecruiter))); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestUserHandler_SetStatus_NotAssigned(t *testing.T) {
	dir := &stubDirectory{
		setStatusFn: func(context.Context, string, domain.CandidateStatus, string) (*domain.User, error) {
			return nil, domain.ErrNotAssigned
		},
	}
	h := NewUserHandler(dir, &stubConversations{})

	c, _ := newContext(http.MethodPut, "/v1/candidates/c9/status", `{"status":"REJECTED"}`)
	c.SetParamNames("id")
	c.SetParamValues("c9")
	if err := h.SetStatus(as(c, "r2", domain.RoleRecruiter)); !errors.Is(err, domain.ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
}

func TestUserHandler_Partners(t *testing.T) {
	conv := &stubConversations{
		partnersFn: func(_ context.Context, user string) ([]ports.ChatPartner, error) {
			return []ports.ChatPartner{{
				User:           &domain.User{ID: "r1", Username: "rita", Role: domain.RoleRecruiter},
				ConversationID: domain.ConversationID(user, "r1"),
				Unread:         2,
			}}, nil
		},
	}
	h := NewUserHandler(&stubDirectory{}, conv)

	c, rec := newContext(http.MethodGet, "/v1/partners", "")
	if err := h.Partners(as(c, "c1", domain.RoleCandidate)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var partners []ports.ChatPartner
	if err := json.Unmarshal(rec.Body.Bytes(), &partners); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(partners) != 1 || partners[0].Unread != 2 || partners[0].ConversationID != "c1_r1" {
		t.Fatalf("unexpected partners: %+v", partners)
	}
}

func TestUserHandler_Me(t *testing.T) {
	dir := &stubDirectory{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: "rita", Role: domain.RoleRecruiter}, nil
		},
	}
	h := NewUserHandler(dir, &stubConversations{})

	c, rec := newContext(http.MethodGet, "/v1/me", "")
	if err := h.Me(as(c, "r1", domain.RoleRecruiter)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user.ID != "r1" {
		t.Fatalf("expected caller, got %+v", user)
	}
}
