package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"taskboard.com/taskboard/internal/dashboard"
	apperrors "taskboard.com/taskboard/internal/errors"
	middleware "taskboard.com/taskboard/internal/http/middlewares"
	"taskboard.com/taskboard/internal/http/validators"
	model "taskboard.com/taskboard/internal/models"
	"taskboard.com/taskboard/internal/services"
)

type dashboardPage struct {
	Title        string
	Identity     *model.Identity
	View         dashboard.View
	Error        string
	DefaultColor string
}

type editTaskPage struct {
	Title      string
	Identity   *model.Identity
	Task       *model.Task
	Categories []model.Category
	Error      string
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}

func (h *Handler) Dashboard(c echo.Context) error {
	ctrl := dashboard.NewController(h.taskService, h.categoryService)
	defer ctrl.Close()

	ctrl.SetQuery(strings.TrimSpace(c.QueryParam("q")))
	if err := ctrl.Open(c.Request().Context(), middleware.GetIdentity(c)); err != nil {
		if apperrors.IsKind(err, apperrors.KindUnauthenticated) {
			return c.Redirect(http.StatusSeeOther, loginPath)
		}
		return h.renderDashboard(c, ctrl, apperrors.StatusCode(err))
	}

	return h.renderDashboard(c, ctrl, http.StatusOK)
}

func (h *Handler) CreateTaskForm(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, userID string) error {
		dueDate, err := validators.ParseDueDate(formValue(c, "due_date"))
		if err != nil {
			return err
		}
		_, err = h.taskService.Create(ctx, userID, services.CreateTaskInput{
			Title:       c.FormValue("title"),
			Description: formValue(c, "description"),
			DueDate:     dueDate,
			CategoryID:  formValue(c, "category_id"),
		})
		return err
	})
}

func (h *Handler) EditTaskPage(c echo.Context) error {
	ctx := c.Request().Context()
	identity := middleware.GetIdentity(c)

	task, err := h.taskService.Get(ctx, identity.ID, c.Param("id"))
	if err != nil {
		return err
	}
	categories, err := h.categoryService.List(ctx, identity.ID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "edit_task", editTaskPage{
		Title:      "Edit task",
		Identity:   identity,
		Task:       task,
		Categories: categories,
	})
}

// UpdateTaskForm overwrites every editable field with the submitted form.
func (h *Handler) UpdateTaskForm(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, userID string) error {
		dueDate, err := validators.ParseDueDate(formValue(c, "due_date"))
		if err != nil {
			return err
		}
		title := c.FormValue("title")
		_, err = h.taskService.Update(ctx, userID, c.Param("id"), services.UpdateTaskInput{
			Title:          &title,
			Description:    formValue(c, "description"),
			DescriptionSet: true,
			DueDate:        dueDate,
			DueDateSet:     true,
			CategoryID:     formValue(c, "category_id"),
			CategoryIDSet:  true,
		})
		return err
	})
}

func (h *Handler) ToggleTaskForm(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, userID string) error {
		_, err := h.taskService.Toggle(ctx, userID, c.Param("id"))
		return err
	})
}

func (h *Handler) DeleteTaskForm(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, userID string) error {
		return h.taskService.Delete(ctx, userID, c.Param("id"))
	})
}

func (h *Handler) CreateCategoryForm(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, userID string) error {
		_, err := h.categoryService.Create(ctx, userID, services.CreateCategoryInput{
			Name:  c.FormValue("name"),
			Color: c.FormValue("color"),
		})
		return err
	})
}

func (h *Handler) DeleteCategoryForm(c echo.Context) error {
	return h.mutate(c, func(ctx context.Context, userID string) error {
		return h.categoryService.Delete(ctx, userID, c.Param("id"))
	})
}

// mutate runs fn through a dashboard controller. A successful write redirects
// back to the dashboard so a browser refresh does not repeat it; a failed one
// renders the refreshed dashboard with the failure inline.
func (h *Handler) mutate(c echo.Context, fn func(ctx context.Context, userID string) error) error {
	ctrl := dashboard.NewController(h.taskService, h.categoryService)
	defer ctrl.Close()

	if err := ctrl.Bind(middleware.GetIdentity(c)); err != nil {
		return c.Redirect(http.StatusSeeOther, loginPath)
	}

	var writeErr error
	err := ctrl.Mutate(c.Request().Context(), func(ctx context.Context, userID string) error {
		writeErr = fn(ctx, userID)
		return writeErr
	})
	if writeErr == nil {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return h.renderDashboard(c, ctrl, apperrors.StatusCode(err))
}

func (h *Handler) renderDashboard(c echo.Context, ctrl *dashboard.Controller, status int) error {
	view := ctrl.View(h.now())

	page := dashboardPage{
		Title:        "Dashboard",
		Identity:     view.Identity,
		View:         view,
		DefaultColor: model.DefaultCategoryColor,
	}
	if view.Err != nil {
		page.Error = h.message(c, view.Err)
	}

	return c.Render(status, "dashboard", page)
}

func formValue(c echo.Context, name string) *string {
	v := c.FormValue(name)
	return &v
}
