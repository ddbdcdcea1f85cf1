package dto

import (
	"time"

	"taskboard.com/taskboard/internal/dashboard"
	model "taskboard.com/taskboard/internal/models"
)

const DateLayout = "2006-01-02"

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	CategoryID  *string `json:"category_id"`
}

// UpdateTaskRequest is decoded next to the raw field map so that an explicit
// null can be told apart from an absent field.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	CategoryID  *string `json:"category_id"`
}

type SetCompletedRequest struct {
	Completed *bool `json:"completed"`
}

type TaskItem struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	Completed   bool          `json:"completed"`
	DueDate     *string       `json:"due_date,omitempty"`
	CategoryID  *string       `json:"category_id,omitempty"`
	Category    *CategoryItem `json:"category,omitempty"`
	Overdue     bool          `json:"overdue"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

func ToTaskItem(task model.Task, category *model.Category, now time.Time) TaskItem {
	item := TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CategoryID:  task.CategoryID,
		Overdue:     task.Overdue(now),
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if task.DueDate != nil {
		due := task.DueDate.Format(DateLayout)
		item.DueDate = &due
	}
	if category != nil {
		c := ToCategoryItem(*category)
		item.Category = &c
	}
	return item
}

func ToTaskItems(views []dashboard.TaskView, now time.Time) []TaskItem {
	items := make([]TaskItem, 0, len(views))
	for _, v := range views {
		items = append(items, ToTaskItem(v.Task, v.Category, now))
	}
	return items
}
