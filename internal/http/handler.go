package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard.com/taskboard/internal/dashboard"
	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	middleware "taskboard.com/taskboard/internal/http/middlewares"
	"taskboard.com/taskboard/internal/http/validators"
	model "taskboard.com/taskboard/internal/models"
	"taskboard.com/taskboard/internal/services"
	"taskboard.com/taskboard/pkg/translator"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	authService     *services.AuthService
	taskService     *services.TaskService
	categoryService *services.CategoryService
	translator      *translator.Translator
	cookieSecure    bool
	now             func() time.Time
}

func NewHandler(
	authService *services.AuthService,
	taskService *services.TaskService,
	categoryService *services.CategoryService,
	tr *translator.Translator,
	cookieSecure bool,
) *Handler {
	return &Handler{
		authService:     authService,
		taskService:     taskService,
		categoryService: categoryService,
		translator:      tr,
		cookieSecure:    cookieSecure,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) ListTasks(c echo.Context) error {
	ctrl := dashboard.NewController(h.taskService, h.categoryService)
	defer ctrl.Close()

	ctrl.SetQuery(c.QueryParam("q"))
	if err := ctrl.Open(c.Request().Context(), middleware.GetIdentity(c)); err != nil {
		return err
	}

	now := h.now()
	tasks := dto.ToTaskItems(ctrl.View(now).Tasks, now)
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	ctx := c.Request().Context()
	identity := middleware.GetIdentity(c)

	task, err := h.taskService.Get(ctx, identity.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return h.taskJSON(c, http.StatusOK, identity, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}
	input, err := validators.BuildCreateTaskInput(req)
	if err != nil {
		return err
	}

	identity := middleware.GetIdentity(c)
	task, err := h.taskService.Create(c.Request().Context(), identity.ID, input)
	if err != nil {
		return err
	}

	return h.taskJSON(c, http.StatusCreated, identity, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	raw, err := decodeJSON(c, &req)
	if err != nil {
		return err
	}
	input, err := validators.BuildUpdateTaskInput(req, raw)
	if err != nil {
		return err
	}

	identity := middleware.GetIdentity(c)
	task, err := h.taskService.Update(c.Request().Context(), identity.ID, c.Param("id"), input)
	if err != nil {
		return err
	}

	return h.taskJSON(c, http.StatusOK, identity, task)
}

func (h *Handler) SetTaskCompleted(c echo.Context) error {
	var req dto.SetCompletedRequest
	if err := c.Bind(&req); err != nil || req.Completed == nil {
		return apperrors.ErrInvalidPayload
	}

	identity := middleware.GetIdentity(c)
	task, err := h.taskService.SetCompleted(c.Request().Context(), identity.ID, c.Param("id"), *req.Completed)
	if err != nil {
		return err
	}

	return h.taskJSON(c, http.StatusOK, identity, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if err := h.taskService.Delete(c.Request().Context(), identity.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// taskJSON writes task with its category resolved the same way the dashboard
// does.
func (h *Handler) taskJSON(c echo.Context, status int, identity *model.Identity, task *model.Task) error {
	var category *model.Category
	if task.CategoryID != nil {
		categories, err := h.categoryService.List(c.Request().Context(), identity.ID)
		if err != nil {
			return err
		}
		for i := range categories {
			if categories[i].ID == *task.CategoryID {
				category = &categories[i]
				break
			}
		}
	}

	return c.JSON(status, dto.ToTaskItem(*task, category, h.now()))
}

// decodeJSON decodes the body into req and also returns it as a field map.
func decodeJSON(c echo.Context, req any) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.ErrInvalidPayload
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.ErrInvalidPayload
	}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, apperrors.ErrInvalidPayload
	}
	return raw, nil
}
