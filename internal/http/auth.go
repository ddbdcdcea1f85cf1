package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	middleware "taskboard.com/taskboard/internal/http/middlewares"
	"taskboard.com/taskboard/internal/services"
)

const (
	loginPath     = "/auth/login"
	dashboardPath = "/dashboard"
)

type authPage struct {
	Title string
	Email string
	Error string
}

func (h *Handler) Index(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) LoginPage(c echo.Context) error {
	if h.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return c.Render(http.StatusOK, "login", authPage{Title: "Sign in"})
}

func (h *Handler) Login(c echo.Context) error {
	email := c.FormValue("email")
	session, err := h.authService.SignIn(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		return c.Render(apperrors.StatusCode(err), "login", authPage{
			Title: "Sign in",
			Email: email,
			Error: h.message(c, err),
		})
	}

	h.setSessionCookie(c, session)
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) SignUpPage(c echo.Context) error {
	if h.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return c.Render(http.StatusOK, "signup", authPage{Title: "Sign up"})
}

func (h *Handler) SignUp(c echo.Context) error {
	email := c.FormValue("email")
	session, err := h.authService.SignUp(c.Request().Context(), services.SignUpInput{
		Email:           email,
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirm_password"),
	})
	if err != nil {
		return c.Render(apperrors.StatusCode(err), "signup", authPage{
			Title: "Sign up",
			Email: email,
			Error: h.message(c, err),
		})
	}

	h.setSessionCookie(c, session)
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) Logout(c echo.Context) error {
	h.authService.SignOut(c.Request().Context(), middleware.SessionToken(c))
	h.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, loginPath)
}

func (h *Handler) APISignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}

	session, err := h.authService.SignUp(c.Request().Context(), services.SignUpInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse(session))
}

func (h *Handler) APILogin(c echo.Context) error {
	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}

	session, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse(session))
}

func (h *Handler) APILogout(c echo.Context) error {
	h.authService.SignOut(c.Request().Context(), middleware.SessionToken(c))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) signedIn(c echo.Context) bool {
	token := middleware.SessionToken(c)
	if token == "" {
		return false
	}
	_, err := h.authService.CurrentUser(c.Request().Context(), token)
	return err == nil
}

func (h *Handler) setSessionCookie(c echo.Context, session *services.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionResponse(s *services.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339Nano),
		User:      s.Identity,
	}
}
