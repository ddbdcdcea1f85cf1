package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

type resolverFunc func(ctx context.Context, token string) (model.Identity, error)

func (f resolverFunc) CurrentUser(ctx context.Context, token string) (model.Identity, error) {
	return f(ctx, token)
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestSessionToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newContext(req)
	assert.Empty(t, SessionToken(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	c, _ = newContext(req)
	assert.Equal(t, "from-cookie", SessionToken(c))

	req.Header.Set(echo.HeaderAuthorization, "Bearer from-header")
	c, _ = newContext(req)
	assert.Equal(t, "from-header", SessionToken(c))
}

func TestRequireSession(t *testing.T) {
	resolver := resolverFunc(func(_ context.Context, token string) (model.Identity, error) {
		if token == "good" {
			return model.Identity{ID: "u1", Email: "ada@example.com"}, nil
		}
		return model.Identity{}, apperrors.ErrUnauthenticated
	})
	denied := errors.New("denied")
	mw := RequireSession(resolver, func(echo.Context) error { return denied })

	var seen *model.Identity
	handler := mw(func(c echo.Context) error {
		seen = GetIdentity(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer bad")
	c, _ := newContext(req)
	require.ErrorIs(t, handler(c), denied)
	assert.Nil(t, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	c, rec := newContext(req)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.ID)
}

func TestRateLimiter(t *testing.T) {
	handler := RateLimiter(2, time.Minute)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	call := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = ip + ":1234"
		c, _ := newContext(req)
		return handler(c)
	}

	require.NoError(t, call("10.0.0.1"))
	require.NoError(t, call("10.0.0.1"))
	assert.ErrorIs(t, call("10.0.0.1"), apperrors.ErrRateLimited)
	assert.NoError(t, call("10.0.0.2"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	handler := rateLimiter(1, time.Minute, clock)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	call := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = ip + ":1234"
		c, _ := newContext(req)
		return handler(c)
	}

	require.NoError(t, call("10.0.0.1"))
	assert.ErrorIs(t, call("10.0.0.1"), apperrors.ErrRateLimited)

	now = now.Add(30 * time.Second)
	require.NoError(t, call("10.0.0.2"))
	assert.ErrorIs(t, call("10.0.0.1"), apperrors.ErrRateLimited)

	// The first bucket expires here while the second is still open.
	now = now.Add(31 * time.Second)
	require.NoError(t, call("10.0.0.1"))
	assert.ErrorIs(t, call("10.0.0.2"), apperrors.ErrRateLimited)

	now = now.Add(time.Minute)
	assert.NoError(t, call("10.0.0.2"))
}

func TestLanguage(t *testing.T) {
	handler := Language()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetLang(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newContext(req)
	require.NoError(t, handler(c))
	assert.Equal(t, "en", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderAcceptLanguage, "fr-FR")
	c, rec = newContext(req)
	require.NoError(t, handler(c))
	assert.Equal(t, "fr-FR", rec.Body.String())
}
