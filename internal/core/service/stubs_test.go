package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     []*domain.User
	createErr error
	updateErr error
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, e := range r.users {
		if strings.EqualFold(e.Username, u.Username) {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateUsername, u.Username)
		}
	}
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.AssignedRecruiterID != "" && u.AssignedRecruiterID != f.AssignedRecruiterID {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateCandidateStatus(_ context.Context, candidateID, recruiterID string, status domain.CandidateStatus) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for _, u := range r.users {
		if u.ID == candidateID && u.IsCandidate() && u.AssignedRecruiterID == recruiterID {
			u.Status = status
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotAssigned
}

type stubMessageRepo struct {
	byConv    map[string][]*domain.Message
	unread    map[string]int // conv|user
	appendErr error
	failAfter int // fail appends once this many have succeeded; 0 disables
	appended  int
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{byConv: map[string][]*domain.Message{}, unread: map[string]int{}}
}

func (r *stubMessageRepo) Append(_ context.Context, m *domain.Message) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	if r.failAfter > 0 && r.appended >= r.failAfter {
		return errors.New("store unavailable")
	}
	r.appended++
	cp := *m
	r.byConv[m.ConversationID] = append(r.byConv[m.ConversationID], &cp)
	r.unread[m.ConversationID+"|"+m.ReceiverID]++
	return nil
}

func (r *stubMessageRepo) ListByConversation(_ context.Context, conv string) ([]*domain.Message, error) {
	out := make([]*domain.Message, 0)
	return append(out, r.byConv[conv]...), nil
}

func (r *stubMessageRepo) UnreadCount(_ context.Context, conv, user string) (int, error) {
	return r.unread[conv+"|"+user], nil
}

func (r *stubMessageRepo) ResetUnread(_ context.Context, conv, user string) error {
	delete(r.unread, conv+"|"+user)
	return nil
}

type recordingPublisher struct {
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) {
	p.events = append(p.events, e)
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
