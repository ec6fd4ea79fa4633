package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// UserHandler serves directory lookups and the candidate status workflow.
type UserHandler struct {
	directory     ports.DirectoryService
	conversations ports.ConversationService
}

func NewUserHandler(directory ports.DirectoryService, conversations ports.ConversationService) *UserHandler {
	return &UserHandler{directory: directory, conversations: conversations}
}

// ListRecruiters
//
// @Summary      List all recruiters
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Router       /v1/recruiters [get]
func (h *UserHandler) ListRecruiters(c echo.Context) error {
	users, err := h.directory.ListRecruiters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListCandidates returns the calling recruiter's candidates.
//
// @Summary      List my candidates
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /v1/candidates [get]
func (h *UserHandler) ListCandidates(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	users, err := h.directory.ListCandidatesOf(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.directory.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Me returns the calling user.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Router       /v1/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	user, err := h.directory.GetByID(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Partners lists who the caller can chat with, with unread counts.
//
// @Summary      List chat partners
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.ChatPartner
// @Failure      404  {object}  map[string]string
// @Router       /v1/partners [get]
func (h *UserHandler) Partners(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	partners, err := h.conversations.ChatPartners(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, partners)
}

// SetStatus changes the status of one of the caller's candidates.
//
// @Summary      Set candidate status
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Candidate id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/candidates/{id}/status [put]
func (h *UserHandler) SetStatus(c echo.Context) error {
	me, err := ctxCaller(c)
	if err != nil {
		return err
	}
	var req setStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.directory.SetCandidateStatus(c.Request().Context(), c.Param("id"), domain.CandidateStatus(req.Status), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
