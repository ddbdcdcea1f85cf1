package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	apperrors "taskboard.com/taskboard/internal/errors"
	middleware "taskboard.com/taskboard/internal/http/middlewares"
)

// Register wires the renderer, the error handler and every route onto e.
func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) error {
	renderer, err := NewRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = h.HandleError

	e.Use(echomw.Recover())
	e.Use(middleware.ZapLogger(zap.L()))
	e.Use(middleware.Language())
	e.Use(echomw.BodyLimit("1M"))

	authLimit := middleware.RateLimiter(rateLimitPerMinute, time.Minute)

	e.GET("/", h.Index)

	auth := e.Group("/auth")
	auth.GET("/login", h.LoginPage)
	auth.POST("/login", h.Login, authLimit)
	auth.GET("/signup", h.SignUpPage)
	auth.POST("/signup", h.SignUp, authLimit)
	auth.POST("/logout", h.Logout)

	pages := e.Group("/dashboard", middleware.RequireSession(h.authService, func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, loginPath)
	}))
	pages.GET("", h.Dashboard)
	pages.POST("/tasks", h.CreateTaskForm)
	pages.GET("/tasks/:id/edit", h.EditTaskPage)
	pages.POST("/tasks/:id", h.UpdateTaskForm)
	pages.POST("/tasks/:id/toggle", h.ToggleTaskForm)
	pages.POST("/tasks/:id/delete", h.DeleteTaskForm)
	pages.POST("/categories", h.CreateCategoryForm)
	pages.POST("/categories/:id/delete", h.DeleteCategoryForm)

	api := e.Group(apiPrefix)
	api.GET("/health", h.Health)
	api.POST("/auth/signup", h.APISignUp, authLimit)
	api.POST("/auth/login", h.APILogin, authLimit)
	api.POST("/auth/logout", h.APILogout)

	private := api.Group("", middleware.RequireSession(h.authService, func(echo.Context) error {
		return apperrors.ErrUnauthenticated
	}))
	private.GET("/tasks", h.ListTasks)
	private.POST("/tasks", h.CreateTask)
	private.GET("/tasks/:id", h.GetTask)
	private.PATCH("/tasks/:id", h.UpdateTask)
	private.PUT("/tasks/:id/completed", h.SetTaskCompleted)
	private.DELETE("/tasks/:id", h.DeleteTask)
	private.GET("/categories", h.ListCategories)
	private.POST("/categories", h.CreateCategory)
	private.PATCH("/categories/:id", h.UpdateCategory)
	private.DELETE("/categories/:id", h.DeleteCategory)

	return nil
}
