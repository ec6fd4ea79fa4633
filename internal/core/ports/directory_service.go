package ports

import (
	"context"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to Register.
type RegisterInput struct {
	Username            string
	Role                domain.Role
	Secret              string
	AssignedRecruiterID string // candidates only
}

// SecretMatcher decides how secrets are stored and compared.
type SecretMatcher interface {
	Seal(secret string) (string, error)
	Match(stored, given string) bool
}

// DirectoryService manages users and the candidate status workflow. Every
// returned user has its secret stripped.
type DirectoryService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, secret string) (*domain.User, error)
	ListRecruiters(ctx context.Context) ([]*domain.User, error)
	ListCandidatesOf(ctx context.Context, recruiterID string) ([]*domain.User, error)
	// GetByID returns domain.ErrUserNotFound when no such user exists.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	SetCandidateStatus(ctx context.Context, candidateID string, status domain.CandidateStatus, actingRecruiterID string) (*domain.User, error)
	AssignedRecruiter(ctx context.Context, candidateID string) (*domain.User, error)
}
