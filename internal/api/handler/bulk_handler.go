package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api/metrics"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// BulkHandler runs recruiter campaigns for the calling recruiter.
type BulkHandler struct {
	bulk ports.BulkService
}

func NewBulkHandler(bulk ports.BulkService) *BulkHandler {
	return &BulkHandler{bulk: bulk}
}

// SendToStatus messages every candidate of the caller with the given status.
// A send that stops part way still answers 200 with complete=false, since
// the messages already sent cannot be taken back.
//
// @Summary      Message all candidates with a status
// @Tags         bulk
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkMessageRequest  true  "Target status and text"
// @Success      200   {object}  bulkMessageResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/bulk/messages [post]
func (h *BulkHandler) SendToStatus(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req bulkMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.bulk.SendToStatus(c.Request().Context(), me.ID, domain.CandidateStatus(req.Status), req.Text)
	if err != nil && !errors.Is(err, domain.ErrBulkIncomplete) {
		return err
	}

	metrics.BulkMessagesTotal.WithLabelValues("targeted").Add(float64(res.Targeted))
	metrics.BulkMessagesTotal.WithLabelValues("sent").Add(float64(len(res.Sent)))

	resp := bulkMessageResponse{
		Targeted: res.Targeted,
		Sent:     len(res.Sent),
		Complete: err == nil,
		Messages: res.Sent,
	}
	if err != nil {
		metrics.BulkIncompleteTotal.Inc()
		resp.Error = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

// ApplyStatus sets one status on many of the caller's candidates.
//
// @Summary      Set status on many candidates
// @Tags         bulk
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkStatusRequest  true  "Status and candidate ids"
// @Success      200   {object}  bulkStatusResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/bulk/status [post]
func (h *BulkHandler) ApplyStatus(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req bulkStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	n := h.bulk.ApplyStatusToMany(c.Request().Context(), me.ID, req.CandidateIDs, domain.CandidateStatus(req.Status))

	metrics.BulkStatusUpdatesTotal.WithLabelValues("updated").Add(float64(n))
	metrics.BulkStatusUpdatesTotal.WithLabelValues("skipped").Add(float64(len(req.CandidateIDs) - n))

	return c.JSON(http.StatusOK, bulkStatusResponse{Requested: len(req.CandidateIDs), Updated: n})
}
