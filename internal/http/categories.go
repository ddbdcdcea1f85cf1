package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	middleware "taskboard.com/taskboard/internal/http/middlewares"
	"taskboard.com/taskboard/internal/http/validators"
	"taskboard.com/taskboard/internal/services"
)

func (h *Handler) ListCategories(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	categories, err := h.categoryService.List(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}

	items := dto.ToCategoryItems(categories)
	return c.JSON(http.StatusOK, echo.Map{
		"count":      len(items),
		"categories": items,
	})
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidPayload
	}

	identity := middleware.GetIdentity(c)
	category, err := h.categoryService.Create(c.Request().Context(), identity.ID, services.CreateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToCategoryItem(*category))
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	var req dto.UpdateCategoryRequest
	raw, err := decodeJSON(c, &req)
	if err != nil {
		return err
	}
	input, err := validators.BuildUpdateCategoryInput(req, raw)
	if err != nil {
		return err
	}

	identity := middleware.GetIdentity(c)
	category, err := h.categoryService.Update(c.Request().Context(), identity.ID, c.Param("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToCategoryItem(*category))
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if err := h.categoryService.Delete(c.Request().Context(), identity.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
