package domain

import (
	"errors"
	"strings"
)

// Role distinguishes the two kinds of participant.
type Role string

const (
	RoleRecruiter Role = "RECRUITER"
	RoleCandidate Role = "CANDIDATE"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleRecruiter || r == RoleCandidate
}

var ErrDuplicateUsername = errors.New("user with this username already exists")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUserNotFound = errors.New("user not found")
var ErrRecruiterNotFound = errors.New("assigned recruiter not found")
var ErrInvalidRole = errors.New("invalid role")

// User models a registered participant. Secret is never serialized by the
// API; read paths hand out Public copies.
type User struct {
	ID                  string          `json:"id"`
	Username            string          `json:"username"`
	Role                Role            `json:"role"`
	Secret              string          `json:"-"`
	AssignedRecruiterID string          `json:"assigned_recruiter_id,omitempty"`
	Status              CandidateStatus `json:"status,omitempty"`
}

// Public returns a copy of u with the secret cleared.
func (u User) Public() User {
	u.Secret = ""
	return u
}

// IsCandidate reports whether the user holds the candidate role.
func (u User) IsCandidate() bool { return u.Role == RoleCandidate }

// IsRecruiter reports whether the user holds the recruiter role.
func (u User) IsRecruiter() bool { return u.Role == RoleRecruiter }

// SameUsername compares usernames the way the directory enforces uniqueness.
func SameUsername(a, b string) bool {
	return strings.EqualFold(a, b)
}
