package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	middleware "taskboard.com/taskboard/internal/http/middlewares"
)

const apiPrefix = "/api"

// HandleError is the echo error handler. API calls get the JSON envelope,
// pages get the error page; both carry the translated message.
func (h *Handler) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := apperrors.StatusCode(err)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
	}
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	message := h.message(c, err)

	var writeErr error
	switch {
	case c.Request().Method == http.MethodHead:
		writeErr = c.NoContent(status)
	case strings.HasPrefix(c.Request().URL.Path, apiPrefix):
		writeErr = c.JSON(status, dto.ErrorResponse{Error: dto.ErrorBody{Code: status, Message: message}})
	case status == http.StatusUnauthorized:
		writeErr = c.Redirect(http.StatusSeeOther, loginPath)
	default:
		writeErr = c.Render(status, "error", errorPage{
			Title:   http.StatusText(status),
			Status:  status,
			Message: message,
		})
	}
	if writeErr != nil {
		zap.L().Error("failed to write error response", zap.Error(writeErr))
	}
}

// message is the user-facing text for err in the request's language.
func (h *Handler) message(c echo.Context, err error) string {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return h.translator.Localize(middleware.GetLang(c), appErr.Key, appErr.Message)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprint(httpErr.Message)
	}

	return http.StatusText(http.StatusInternalServerError)
}
