package ports

import (
	"context"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

// BulkSendResult reports how many candidates matched versus how many
// messages were actually sent.
type BulkSendResult struct {
	Targeted int
	Sent     []*domain.Message
}

// BulkService runs recruiter campaigns over many candidates. Neither
// operation is transactional.
type BulkService interface {
	SendToStatus(ctx context.Context, recruiterID string, status domain.CandidateStatus, text string) (BulkSendResult, error)
	ApplyStatusToMany(ctx context.Context, recruiterID string, candidateIDs []string, status domain.CandidateStatus) int
}
