package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api/middleware"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

// caller is the authenticated user behind a request.
type caller struct {
	ID       string
	Username string
	Role     domain.Role
}

// ctxCaller extracts the claims injected by the Auth middleware. A missing
// user id or role means the middleware did not run.
func ctxCaller(c echo.Context) (caller, error) {
	id, _ := c.Get(middleware.KeyUserID).(string)
	role, _ := c.Get(middleware.KeyRole).(string)
	if id == "" || role == "" {
		return caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get(middleware.KeyUsername).(string)
	return caller{ID: id, Username: username, Role: domain.Role(role)}, nil
}

// bindAndValidate binds the request body into req and runs struct
// validation, reporting both failures as 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
