package services

import (
	"context"
	"regexp"
	"strings"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type CategoryStore interface {
	List(ctx context.Context, userID string) ([]model.Category, error)
	Create(ctx context.Context, userID, name, color string) (*model.Category, error)
	Update(ctx context.Context, userID, categoryID string, changes repository.CategoryChanges) (*model.Category, error)
	Delete(ctx context.Context, userID, categoryID string) error
}

type CreateCategoryInput struct {
	Name  string
	Color string
}

type UpdateCategoryInput struct {
	Name  *string
	Color *string
}

type CategoryService struct {
	repo CategoryStore
}

func NewCategoryService(repo CategoryStore) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	categories, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return categories, nil
}

// Create adds a category. An empty color falls back to the form default.
func (s *CategoryService) Create(ctx context.Context, userID string, input CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.ErrCategoryNameRequired
	}
	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = model.DefaultCategoryColor
	}
	if !hexColor.MatchString(color) {
		return nil, apperrors.ErrInvalidColor
	}

	category, err := s.repo.Create(ctx, userID, name, color)
	if err != nil {
		return nil, storeError(err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID string, input UpdateCategoryInput) (*model.Category, error) {
	var changes repository.CategoryChanges
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.ErrCategoryNameRequired
		}
		changes.Name = &name
	}
	if input.Color != nil {
		color := strings.TrimSpace(*input.Color)
		if !hexColor.MatchString(color) {
			return nil, apperrors.ErrInvalidColor
		}
		changes.Color = &color
	}

	category, err := s.repo.Update(ctx, userID, categoryID, changes)
	if err != nil {
		return nil, storeError(err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, categoryID string) error {
	if err := s.repo.Delete(ctx, userID, categoryID); err != nil {
		return storeError(err)
	}
	return nil
}
