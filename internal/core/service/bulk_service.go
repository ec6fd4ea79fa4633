package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// Messenger is the slice of ConversationService the bulk engine needs.
type Messenger interface {
	Send(ctx context.Context, senderID, receiverID, text string) (*domain.Message, error)
}

// BulkService runs recruiter campaigns one candidate at a time.
type BulkService struct {
	directory ports.DirectoryService
	messenger Messenger
	log       zerolog.Logger
}

func NewBulkService(directory ports.DirectoryService, messenger Messenger, log zerolog.Logger) *BulkService {
	return &BulkService{directory: directory, messenger: messenger, log: log}
}

// SendToStatus messages every candidate of recruiterID whose status equals
// status. Sends are sequential and stop at the first failure; messages
// already sent stay sent and are returned alongside the error.
func (s *BulkService) SendToStatus(ctx context.Context, recruiterID string, status domain.CandidateStatus, text string) (ports.BulkSendResult, error) {
	var res ports.BulkSendResult
	if !status.Valid() {
		return res, fmt.Errorf("send to status: %w %q", domain.ErrInvalidStatus, status)
	}

	candidates, err := s.directory.ListCandidatesOf(ctx, recruiterID)
	if err != nil {
		return res, fmt.Errorf("send to status: %w", err)
	}

	targets := make([]*domain.User, 0, len(candidates))
	for _, c := range candidates {
		if c.Status == status {
			targets = append(targets, c)
		}
	}
	res.Targeted = len(targets)
	res.Sent = make([]*domain.Message, 0, len(targets))

	for _, c := range targets {
		msg, err := s.messenger.Send(ctx, recruiterID, c.ID, text)
		if err != nil {
			s.log.Warn().Err(err).
				Str("recruiter_id", recruiterID).
				Str("user_id", c.ID).
				Int("sent", len(res.Sent)).
				Int("targeted", res.Targeted).
				Msg("bulk send stopped")
			return res, fmt.Errorf("send to status: %w (%d of %d sent): %w", domain.ErrBulkIncomplete, len(res.Sent), res.Targeted, err)
		}
		res.Sent = append(res.Sent, msg)
	}

	s.log.Info().
		Str("recruiter_id", recruiterID).
		Str("status", string(status)).
		Int("sent", len(res.Sent)).
		Msg("bulk send finished")

	return res, nil
}

// ApplyStatusToMany sets status on each candidate in turn and returns how
// many succeeded. Failures are logged and skipped.
func (s *BulkService) ApplyStatusToMany(ctx context.Context, recruiterID string, candidateIDs []string, status domain.CandidateStatus) int {
	updated := 0
	for _, id := range candidateIDs {
		if _, err := s.directory.SetCandidateStatus(ctx, id, status, recruiterID); err != nil {
			s.log.Warn().Err(err).
				Str("recruiter_id", recruiterID).
				Str("user_id", id).
				Msg("bulk status update skipped")
			continue
		}
		updated++
	}
	return updated
}

var _ ports.BulkService = (*BulkService)(nil)
