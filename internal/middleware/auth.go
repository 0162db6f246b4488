package middleware

import (
	"context"
	"net/http"
	"strings"

	"eco-electric-api/internal/model"
	"eco-electric-api/internal/token"

	"github.com/labstack/echo/v4"
)

const identityKey = "auth.identity"

// Verifier validates a raw bearer token and returns the identity it proves.
type Verifier interface {
	Verify(raw string) (token.Identity, error)
}

// RoleStore looks up a user's role by email. A missing record is reported as
// an empty role, not an error.
type RoleStore interface {
	FindRole(ctx context.Context, email string) (string, error)
}

// Auth requires a valid bearer token on the request. A missing credential is
// 401; a token that fails verification (bad signature, malformed, expired) is
// 403. On success the decoded identity is stored on the echo context.
func Auth(verifier Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			id, err := verifier.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

func IdentityFromContext(c echo.Context) (token.Identity, bool) {
	id, ok := c.Get(identityKey).(token.Identity)
	return id, ok
}

// RequireOwner checks that the authenticated identity matches the email the
// caller claims to act on. Mismatch is terminal for the request.
func RequireOwner(c echo.Context, claimedEmail string) error {
	id, ok := IdentityFromContext(c)
	if !ok || id.Email != claimedEmail {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

// RequireAdmin gates a route on the authenticated user holding the admin
// role. Must be registered after Auth. An unknown user is non-admin.
func RequireAdmin(roles RoleStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			role, err := roles.FindRole(c.Request().Context(), id.Email)
			if err != nil {
				return err
			}
			if role != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			return next(c)
		}
	}
}
