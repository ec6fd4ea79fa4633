package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/token"
)

// Context keys set by Auth.
const (
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyRole     = "role"
)

// QueryToken is the query parameter StreamAuth reads the token from.
const QueryToken = "access_token"

// TokenParser verifies a raw session token.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// Auth validates the bearer token and injects its claims into context.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return authenticate(parser, false)
}

// StreamAuth is Auth for websocket upgrades. Browsers cannot set headers on
// the handshake, so an access_token query parameter is accepted when the
// header is absent. Mount it on the stream route only.
func StreamAuth(parser TokenParser) echo.MiddlewareFunc {
	return authenticate(parser, true)
}

func authenticate(parser TokenParser, allowQuery bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearer(c, allowQuery)
			if err != nil {
				return err
			}

			claims, err := parser.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(KeyUserID, claims.Subject)
			c.Set(KeyUsername, claims.Username)
			c.Set(KeyRole, string(claims.Role))

			return next(c)
		}
	}
}

func bearer(c echo.Context, allowQuery bool) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if q := c.QueryParam(QueryToken); allowQuery && q != "" {
			return q, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
