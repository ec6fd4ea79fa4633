package domain

import "errors"

// CandidateStatus is the recruiter-assigned label on a candidate.
type CandidateStatus string

const (
	StatusNone         CandidateStatus = "NONE"
	StatusSelected     CandidateStatus = "SELECTED"
	StatusRejected     CandidateStatus = "REJECTED"
	StatusInterviewing CandidateStatus = "INTERVIEWING"
)

var ErrInvalidStatus = errors.New("invalid candidate status")
var ErrNotAssigned = errors.New("candidate not found or not assigned to this recruiter")

// knownStatuses lists every label a candidate can carry.
var knownStatuses = map[CandidateStatus]struct{}{
	StatusNone:         {},
	StatusSelected:     {},
	StatusRejected:     {},
	StatusInterviewing: {},
}

// Valid reports whether s is a known status label.
func (s CandidateStatus) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// CanTransitionTo reports whether a candidate in status s may move to next.
// The workflow is unconstrained: every known status reaches every other one,
// itself included, and none is terminal.
func (s CandidateStatus) CanTransitionTo(next CandidateStatus) bool {
	return s.Valid() && next.Valid()
}

// ParseCandidateStatus converts a label into a CandidateStatus.
func ParseCandidateStatus(v string) (CandidateStatus, error) {
	s := CandidateStatus(v)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
