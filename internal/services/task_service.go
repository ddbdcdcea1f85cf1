package services

import (
	"context"
	"strings"
	"time"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

type TaskStore interface {
	Search(ctx context.Context, userID, query string) ([]model.Task, error)
	Get(ctx context.Context, userID, taskID string) (*model.Task, error)
	Create(ctx context.Context, userID string, input repository.NewTask) (*model.Task, error)
	Update(ctx context.Context, userID, taskID string, changes repository.TaskChanges) (*model.Task, error)
	SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	CategoryID  *string
}

// UpdateTaskInput carries the fields to overwrite. A nil Title keeps the
// current one; the *Set flags say whether a nullable field is written at all.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	DueDate        *time.Time
	DueDateSet     bool
	CategoryID     *string
	CategoryIDSet  bool
}

type TaskService struct {
	repo TaskStore
}

func NewTaskService(repo TaskStore) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	return s.Search(ctx, userID, "")
}

func (s *TaskService) Search(ctx context.Context, userID, query string) ([]model.Task, error) {
	tasks, err := s.repo.Search(ctx, userID, query)
	if err != nil {
		return nil, storeError(err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.repo.Get(ctx, userID, taskID)
	if err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	task, err := s.repo.Create(ctx, userID, repository.NewTask{
		Title:       title,
		Description: optionalText(input.Description),
		DueDate:     input.DueDate,
		CategoryID:  optionalText(input.CategoryID),
	})
	if err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (*model.Task, error) {
	changes := repository.TaskChanges{
		DescriptionSet: input.DescriptionSet,
		DueDateSet:     input.DueDateSet,
		CategoryIDSet:  input.CategoryIDSet,
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.ErrTitleRequired
		}
		changes.Title = &title
	}
	if input.DescriptionSet {
		changes.Description = optionalText(input.Description)
	}
	if input.DueDateSet {
		changes.DueDate = input.DueDate
	}
	if input.CategoryIDSet {
		changes.CategoryID = optionalText(input.CategoryID)
	}

	task, err := s.repo.Update(ctx, userID, taskID, changes)
	if err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*model.Task, error) {
	task, err := s.repo.SetCompleted(ctx, userID, taskID, completed)
	if err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

// Toggle flips the completion flag of an owned task.
func (s *TaskService) Toggle(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return s.SetCompleted(ctx, userID, taskID, !task.Completed)
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		return storeError(err)
	}
	return nil
}

// optionalText maps blank strings to NULL.
func optionalText(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func storeError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.NewStoreError(err)
}
