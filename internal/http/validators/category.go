package validators

import (
	"encoding/json"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/services"
)

func BuildUpdateCategoryInput(req dto.UpdateCategoryRequest, raw map[string]json.RawMessage) (services.UpdateCategoryInput, error) {
	if !hasAnyField(raw, "name", "color") {
		return services.UpdateCategoryInput{}, apperrors.ErrInvalidPayload
	}
	if hasJSONField(raw, "name") && req.Name == nil {
		return services.UpdateCategoryInput{}, apperrors.ErrCategoryNameRequired
	}
	if hasJSONField(raw, "color") && req.Color == nil {
		return services.UpdateCategoryInput{}, apperrors.ErrInvalidColor
	}

	return services.UpdateCategoryInput{Name: req.Name, Color: req.Color}, nil
}
