package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	model "taskboard.com/taskboard/internal/models"
)

const (
	SessionCookie = "taskboard_session"

	identityKey = "identity"
)

type IdentityResolver interface {
	CurrentUser(ctx context.Context, token string) (model.Identity, error)
}

// RequireSession lets a request through only when its session token resolves
// to a live identity. Otherwise the request is answered by unauthenticated.
func RequireSession(resolver IdentityResolver, unauthenticated echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolver.CurrentUser(c.Request().Context(), SessionToken(c))
			if err != nil {
				return unauthenticated(c)
			}

			c.Set(identityKey, &identity)
			return next(c)
		}
	}
}

// SessionToken reads the bearer token, falling back to the session cookie.
func SessionToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func GetIdentity(c echo.Context) *model.Identity {
	identity, _ := c.Get(identityKey).(*model.Identity)
	return identity
}
