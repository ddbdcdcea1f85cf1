package validators

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/services"
)

func BuildCreateTaskInput(req dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	if strings.TrimSpace(req.Title) == "" {
		return services.CreateTaskInput{}, apperrors.ErrTitleRequired
	}

	dueDate, err := ParseDueDate(req.DueDate)
	if err != nil {
		return services.CreateTaskInput{}, err
	}

	return services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		CategoryID:  req.CategoryID,
	}, nil
}

// BuildUpdateTaskInput turns a PATCH body into an update. raw is the same
// body decoded as a field map; a field present as null clears the column.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (services.UpdateTaskInput, error) {
	if !hasAnyField(raw, "title", "description", "due_date", "category_id") {
		return services.UpdateTaskInput{}, apperrors.ErrInvalidPayload
	}
	if hasJSONField(raw, "title") && req.Title == nil {
		return services.UpdateTaskInput{}, apperrors.ErrTitleRequired
	}

	input := services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		DescriptionSet: hasJSONField(raw, "description"),
		CategoryID:     req.CategoryID,
		CategoryIDSet:  hasJSONField(raw, "category_id"),
		DueDateSet:     hasJSONField(raw, "due_date"),
	}

	if input.DueDateSet && !isJSONNull(raw["due_date"]) {
		if req.DueDate == nil {
			return services.UpdateTaskInput{}, apperrors.ErrInvalidDueDate
		}
		dueDate, err := ParseDueDate(req.DueDate)
		if err != nil {
			return services.UpdateTaskInput{}, err
		}
		input.DueDate = dueDate
	}

	return input, nil
}

// ParseDueDate reads a YYYY-MM-DD date. Nil and blank mean no due date.
func ParseDueDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dto.DateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, apperrors.ErrInvalidDueDate
	}
	return &parsed, nil
}

func hasAnyField(raw map[string]json.RawMessage, fields ...string) bool {
	for _, f := range fields {
		if hasJSONField(raw, f) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
