package ports

import (
	"context"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

// UserFilter narrows List results. Zero fields do not filter.
type UserFilter struct {
	Role                domain.Role
	AssignedRecruiterID string
	Status              domain.CandidateStatus
}

// UserRepository owns the users table. Returned records include the secret;
// callers strip it before handing users out.
type UserRepository interface {
	// Create inserts u, failing with domain.ErrDuplicateUsername when the
	// username is already taken ignoring case.
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns matching users in registration order.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	// UpdateCandidateStatus sets the status of candidateID only when it is a
	// candidate assigned to recruiterID; otherwise domain.ErrNotAssigned.
	UpdateCandidateStatus(ctx context.Context, candidateID, recruiterID string, status domain.CandidateStatus) (*domain.User, error)
}
