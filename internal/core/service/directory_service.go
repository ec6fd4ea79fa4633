package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// DirectoryService implements registration, authentication, lookups and the
// candidate status workflow.
type DirectoryService struct {
	users   ports.UserRepository
	events  ports.EventPublisher
	secrets ports.SecretMatcher
	log     zerolog.Logger
	newID   func() string
}

// NewDirectoryService returns a DirectoryService. A nil secrets matcher
// means PlaintextMatcher.
func NewDirectoryService(users ports.UserRepository, events ports.EventPublisher, secrets ports.SecretMatcher, log zerolog.Logger) *DirectoryService {
	if secrets == nil {
		secrets = PlaintextMatcher{}
	}
	return &DirectoryService{
		users:   users,
		events:  events,
		secrets: secrets,
		log:     log,
		newID:   uuid.NewString,
	}
}

func (s *DirectoryService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("register: %w %q", domain.ErrInvalidRole, in.Role)
	}

	sealed, err := s.secrets.Seal(in.Secret)
	if err != nil {
		return nil, fmt.Errorf("register: seal secret: %w", err)
	}

	user := &domain.User{
		ID:       s.newID(),
		Username: in.Username,
		Role:     in.Role,
		Secret:   sealed,
	}
	if in.Role == domain.RoleCandidate {
		user.AssignedRecruiterID = in.AssignedRecruiterID
		user.Status = domain.StatusNone
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user registered")

	out := user.Public()
	return &out, nil
}

func (s *DirectoryService) Authenticate(ctx context.Context, username, secret string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !s.secrets.Match(user.Secret, secret) {
		return nil, domain.ErrInvalidCredentials
	}

	out := user.Public()
	return &out, nil
}

func (s *DirectoryService) ListRecruiters(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx, ports.UserFilter{Role: domain.RoleRecruiter})
	if err != nil {
		return nil, fmt.Errorf("list recruiters: %w", err)
	}
	return stripAll(users), nil
}

// ListCandidatesOf returns the candidates assigned to recruiterID, or an
// empty slice when there are none or the recruiter does not exist.
func (s *DirectoryService) ListCandidatesOf(ctx context.Context, recruiterID string) ([]*domain.User, error) {
	users, err := s.users.List(ctx, ports.UserFilter{Role: domain.RoleCandidate, AssignedRecruiterID: recruiterID})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return stripAll(users), nil
}

func (s *DirectoryService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := user.Public()
	return &out, nil
}

// SetCandidateStatus is the only way a candidate's status changes. Setting
// the current status again is allowed and notifies subscribers again.
func (s *DirectoryService) SetCandidateStatus(ctx context.Context, candidateID string, status domain.CandidateStatus, actingRecruiterID string) (*domain.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("set status: %w %q", domain.ErrInvalidStatus, status)
	}

	updated, err := s.users.UpdateCandidateStatus(ctx, candidateID, actingRecruiterID, status)
	if errors.Is(err, domain.ErrNotAssigned) {
		return nil, fmt.Errorf("set status: %w (candidate %s, recruiter %s)", err, candidateID, actingRecruiterID)
	}
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	out := updated.Public()
	s.events.Publish(ctx, domain.UserStatusChanged{User: out})

	s.log.Info().
		Str("user_id", candidateID).
		Str("recruiter_id", actingRecruiterID).
		Str("status", string(status)).
		Msg("candidate status changed")

	return &out, nil
}

// AssignedRecruiter resolves the recruiter a candidate is assigned to.
func (s *DirectoryService) AssignedRecruiter(ctx context.Context, candidateID string) (*domain.User, error) {
	candidate, err := s.users.FindByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("assigned recruiter: %w", err)
	}
	recruiter, err := assignedRecruiter(ctx, s.users, candidate)
	if err != nil {
		return nil, fmt.Errorf("assigned recruiter: %w", err)
	}
	out := recruiter.Public()
	return &out, nil
}

// assignedRecruiter returns the raw recruiter record for candidate.
func assignedRecruiter(ctx context.Context, users ports.UserRepository, candidate *domain.User) (*domain.User, error) {
	if !candidate.IsCandidate() || candidate.AssignedRecruiterID == "" {
		return nil, domain.ErrRecruiterNotFound
	}
	recruiter, err := users.FindByID(ctx, candidate.AssignedRecruiterID)
	if errors.Is(err, domain.ErrUserNotFound) || (err == nil && !recruiter.IsRecruiter()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecruiterNotFound, candidate.AssignedRecruiterID)
	}
	if err != nil {
		return nil, err
	}
	return recruiter, nil
}

func stripAll(users []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		pub := u.Public()
		out = append(out, &pub)
	}
	return out
}

var _ ports.DirectoryService = (*DirectoryService)(nil)
