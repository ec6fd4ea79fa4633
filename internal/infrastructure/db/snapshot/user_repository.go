package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// UserRepository implements ports.UserRepository over the "users" record.
type UserRepository struct {
	mu    sync.RWMutex
	store ports.KeyValueStore
	users []*domain.User
	log   zerolog.Logger
}

// NewUserRepository loads the users record from store.
func NewUserRepository(ctx context.Context, store ports.KeyValueStore, log zerolog.Logger) *UserRepository {
	r := &UserRepository{store: store, log: log}

	var records []userRecord
	if load(ctx, store, ports.RecordUsers, &records, log) {
		r.users = make([]*domain.User, 0, len(records))
		for _, rec := range records {
			r.users = append(r.users, rec.toDomain())
		}
	}
	log.Info().Int("users", len(r.users)).Msg("users table loaded")
	return r
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if domain.SameUsername(existing.Username, u.Username) {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateUsername, u.Username)
		}
	}

	cp := *u
	r.users = append(r.users, &cp)
	if err := r.flush(ctx); err != nil {
		r.users = r.users[:len(r.users)-1]
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if domain.SameUsername(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0)
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.AssignedRecruiterID != "" && u.AssignedRecruiterID != f.AssignedRecruiterID {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *UserRepository) UpdateCandidateStatus(ctx context.Context, candidateID, recruiterID string, status domain.CandidateStatus) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var target *domain.User
	for _, u := range r.users {
		if u.ID == candidateID && u.IsCandidate() && u.AssignedRecruiterID == recruiterID {
			target = u
			break
		}
	}
	if target == nil {
		return nil, domain.ErrNotAssigned
	}

	prev := target.Status
	target.Status = status
	if err := r.flush(ctx); err != nil {
		target.Status = prev
		return nil, fmt.Errorf("persist users: %w", err)
	}
	cp := *target
	return &cp, nil
}

// flush writes the whole table. Callers hold the write lock.
func (r *UserRepository) flush(ctx context.Context) error {
	records := make([]userRecord, 0, len(r.users))
	for _, u := range r.users {
		records = append(records, toUserRecord(u))
	}
	return save(ctx, r.store, ports.RecordUsers, records)
}
