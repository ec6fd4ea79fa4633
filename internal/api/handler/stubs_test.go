package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api/middleware"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

var errNotStubbed = errors.New("not stubbed")

type stubDirectory struct {
	registerFn     func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	authenticateFn func(ctx context.Context, username, secret string) (*domain.User, error)
	recruitersFn   func(ctx context.Context) ([]*domain.User, error)
	candidatesFn   func(ctx context.Context, recruiterID string) ([]*domain.User, error)
	getFn          func(ctx context.Context, id string) (*domain.User, error)
	setStatusFn    func(ctx context.Context, candidateID string, status domain.CandidateStatus, recruiterID string) (*domain.User, error)
}

func (s *stubDirectory) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if s.registerFn == nil {
		return nil, errNotStubbed
	}
	return s.registerFn(ctx, in)
}

func (s *stubDirectory) Authenticate(ctx context.Context, username, secret string) (*domain.User, error) {
	if s.authenticateFn == nil {
		return nil, errNotStubbed
	}
	return s.authenticateFn(ctx, username, secret)
}

func (s *stubDirectory) ListRecruiters(ctx context.Context) ([]*domain.User, error) {
	if s.recruitersFn == nil {
		return nil, errNotStubbed
	}
	return s.recruitersFn(ctx)
}

func (s *stubDirectory) ListCandidatesOf(ctx context.Context, recruiterID string) ([]*domain.User, error) {
	if s.candidatesFn == nil {
		return nil, errNotStubbed
	}
	return s.candidatesFn(ctx, recruiterID)
}

func (s *stubDirectory) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getFn == nil {
		return nil, errNotStubbed
	}
	return s.getFn(ctx, id)
}

func (s *stubDirectory) SetCandidateStatus(ctx context.Context, candidateID string, status domain.CandidateStatus, recruiterID string) (*domain.User, error) {
	if s.setStatusFn == nil {
		return nil, errNotStubbed
	}
	return s.setStatusFn(ctx, candidateID, status, recruiterID)
}

func (s *stubDirectory) AssignedRecruiter(context.Context, string) (*domain.User, error) {
	return nil, errNotStubbed
}

type stubConversations struct {
	messagesFn func(ctx context.Context, a, b string) ([]*domain.Message, error)
	sendFn     func(ctx context.Context, sender, receiver, text string) (*domain.Message, error)
	markReadFn func(ctx context.Context, reader, partner string) error
	unreadFn   func(ctx context.Context, user, partner string) (int, error)
	partnersFn func(ctx context.Context, user string) ([]ports.ChatPartner, error)
}

func (s *stubConversations) GetMessages(ctx context.Context, a, b string) ([]*domain.Message, error) {
	if s.messagesFn == nil {
		return nil, errNotStubbed
	}
	return s.messagesFn(ctx, a, b)
}

func (s *stubConversations) Send(ctx context.Context, sender, receiver, text string) (*domain.Message, error) {
	if s.sendFn == nil {
		return nil, errNotStubbed
	}
	return s.sendFn(ctx, sender, receiver, text)
}

func (s *stubConversations) MarkRead(ctx context.Context, reader, partner string) error {
	if s.markReadFn == nil {
		return errNotStubbed
	}
	return s.markReadFn(ctx, reader, partner)
}

func (s *stubConversations) UnreadCount(ctx context.Context, user, partner string) (int, error) {
	if s.unreadFn == nil {
		return 0, errNotStubbed
	}
	return s.unreadFn(ctx, user, partner)
}

func (s *stubConversations) ChatPartners(ctx context.Context, user string) ([]ports.ChatPartner, error) {
	if s.partnersFn == nil {
		return nil, errNotStubbed
	}
	return s.partnersFn(ctx, user)
}

type stubBulk struct {
	sendFn  func(ctx context.Context, recruiterID string, status domain.CandidateStatus, text string) (ports.BulkSendResult, error)
	applyFn func(ctx context.Context, recruiterID string, ids []string, status domain.CandidateStatus) int
}

func (s *stubBulk) SendToStatus(ctx context.Context, recruiterID string, status domain.CandidateStatus, text string) (ports.BulkSendResult, error) {
	return s.sendFn(ctx, recruiterID, status, text)
}

func (s *stubBulk) ApplyStatusToMany(ctx context.Context, recruiterID string, ids []string, status domain.CandidateStatus) int {
	return s.applyFn(ctx, recruiterID, ids, status)
}

type stubIssuer struct {
	token string
	exp   time.Time
	err   error
}

func (s stubIssuer) Issue(*domain.User) (string, time.Time, error) {
	return s.token, s.exp, s.err
}

// newContext builds an echo context with the production validator
// installed. An empty body sends no Content-Type.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// as injects the claims the Auth middleware would have set.
func as(c echo.Context, id string, role domain.Role) echo.Context {
	c.Set(middleware.KeyUserID, id)
	c.Set(middleware.KeyUsername, id)
	c.Set(middleware.KeyRole, string(role))
	return c
}

// httpCode returns the status carried by an *echo.HTTPError.
func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
