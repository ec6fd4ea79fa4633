package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *domain.User) (string, time.Time, error)
}

type AuthHandler struct {
	directory ports.DirectoryService
	tokens    TokenIssuer
}

func NewAuthHandler(directory ports.DirectoryService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{directory: directory, tokens: tokens}
}

// Register creates a new user account.
//
// @Summary      Register a recruiter or candidate
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.directory.Register(c.Request().Context(), ports.RegisterInput{
		Username:            req.Username,
		Role:                domain.Role(req.Role),
		Secret:              req.Password,
		AssignedRecruiterID: req.AssignedRecruiterID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.directory.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, ExpiresAt: &exp, User: user})
}
