package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

type TaskRepository struct {
	db  *gorm.DB
	now Clock
}

type NewTask struct {
	Title       string
	Description *string
	DueDate     *time.Time
	CategoryID  *string
}

// TaskChanges lists the columns an update overwrites. Nullable columns carry
// a *Set flag so that "clear the value" differs from "leave it alone".
type TaskChanges struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	DueDate        *time.Time
	DueDateSet     bool
	CategoryID     *string
	CategoryIDSet  bool
}

func NewTaskRepository(db *gorm.DB, opts ...Option) *TaskRepository {
	s := newSettings(opts)
	return &TaskRepository{db: db, now: s.now}
}

func (r *TaskRepository) List(ctx context.Context, userID string) ([]model.Task, error) {
	return r.Search(ctx, userID, "")
}

// Search lists the user's tasks whose title or description contains query,
// case-insensitively. An empty query matches everything.
func (r *TaskRepository) Search(ctx context.Context, userID, query string) ([]model.Task, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	q := db.Where("user_id = ?", userID)
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + escapeLike(query) + "%"
		q = q.Where(searchCondition(db.Dialector.Name()), pattern, pattern)
	}

	tasks := make([]model.Task, 0)
	if err := q.Order("created_at desc").Order("id desc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return findTask(db, userID, taskID)
}

func (r *TaskRepository) Create(ctx context.Context, userID string, input NewTask) (*model.Task, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	now := r.now()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		DueDate:     input.DueDate,
		CategoryID:  input.CategoryID,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if task.CategoryID != nil {
			if err := ensureCategoryOwned(tx, userID, *task.CategoryID); err != nil {
				return err
			}
		}
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Update overwrites the given columns of a task owned by userID. A task that
// does not exist or belongs to someone else yields ErrTaskNotFound.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, changes TaskChanges) (*model.Task, error) {
	values := map[string]interface{}{}
	if changes.Title != nil {
		values["title"] = *changes.Title
	}
	if changes.DescriptionSet {
		values["description"] = changes.Description
	}
	if changes.DueDateSet {
		values["due_date"] = changes.DueDate
	}
	if changes.CategoryIDSet {
		values["category_id"] = changes.CategoryID
	}

	return r.updateOwned(ctx, userID, taskID, values, func(tx *gorm.DB) error {
		if changes.CategoryIDSet && changes.CategoryID != nil {
			return ensureCategoryOwned(tx, userID, *changes.CategoryID)
		}
		return nil
	})
}

func (r *TaskRepository) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*model.Task, error) {
	return r.updateOwned(ctx, userID, taskID, map[string]interface{}{"completed": completed}, nil)
}

// Delete removes the task if userID owns it. Missing or foreign ids are a no-op.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	db, err := session(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("id = ? AND user_id = ?", taskID, userID).Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) updateOwned(
	ctx context.Context,
	userID,
	taskID string,
	values map[string]interface{},
	check func(tx *gorm.DB) error,
) (*model.Task, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	values["updated_at"] = r.now()

	var task *model.Task
	err = db.Transaction(func(tx *gorm.DB) error {
		if check != nil {
			if err := check(tx); err != nil {
				return err
			}
		}

		res := tx.Model(&model.Task{}).
			Where("id = ? AND user_id = ?", taskID, userID).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTaskNotFound
		}

		task, err = findTask(tx, userID, taskID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

func findTask(db *gorm.DB, userID, taskID string) (*model.Task, error) {
	var task model.Task
	err := db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func ensureCategoryOwned(tx *gorm.DB, userID, categoryID string) error {
	var count int64
	if err := tx.Model(&model.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if count == 0 {
		return apperrors.ErrUnknownCategory
	}
	return nil
}

// searchCondition matches title or description against a LIKE pattern
// without regard to case. SQLite's LOWER folds ASCII only, so both sides go
// through it and accented letters must match in the case they were stored.
func searchCondition(dialect string) string {
	if dialect == "postgres" {
		return `(title ILIKE ? ESCAPE '\' OR COALESCE(description, '') ILIKE ? ESCAPE '\')`
	}
	return `(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE LOWER(?) ESCAPE '\')`
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
