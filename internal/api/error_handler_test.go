package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"duplicate", fmt.Errorf("register %q: %w", "alice", domain.ErrDuplicateUsername), http.StatusConflict, `register "alice": user with this username already exists`},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid username or password"},
		{"not assigned", fmt.Errorf("set status: %w", domain.ErrNotAssigned), http.StatusForbidden, domain.ErrNotAssigned.Error()},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest, domain.ErrInvalidStatus.Error()},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, domain.ErrInvalidRole.Error()},
		{"unknown receiver", domain.ErrReceiverNotFound, http.StatusNotFound, domain.ErrReceiverNotFound.Error()},
		{"unknown recruiter", domain.ErrRecruiterNotFound, http.StatusNotFound, domain.ErrRecruiterNotFound.Error()},
		{"unknown user", fmt.Errorf("get %q: %w", "x", domain.ErrUserNotFound), http.StatusNotFound, "user not found"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handle(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
