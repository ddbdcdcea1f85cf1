package dto

import (
	"time"

	model "taskboard.com/taskboard/internal/models"
)

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type CategoryItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
}

func ToCategoryItem(c model.Category) CategoryItem {
	return CategoryItem{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func ToCategoryItems(categories []model.Category) []CategoryItem {
	items := make([]CategoryItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, ToCategoryItem(c))
	}
	return items
}
