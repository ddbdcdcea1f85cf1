package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db  *gorm.DB
	now Clock
}

type CategoryChanges struct {
	Name  *string
	Color *string
}

func NewCategoryRepository(db *gorm.DB, opts ...Option) *CategoryRepository {
	s := newSettings(opts)
	return &CategoryRepository{db: db, now: s.now}
}

func (r *CategoryRepository) List(ctx context.Context, userID string) ([]model.Category, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0)
	if err := db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, userID, categoryID string) (*model.Category, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return findCategory(db, userID, categoryID)
}

func (r *CategoryRepository) Create(ctx context.Context, userID, name, color string) (*model.Category, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		UserID:    userID,
		CreatedAt: r.now(),
	}
	if err := db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, userID, categoryID string, changes CategoryChanges) (*model.Category, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if changes.Name != nil {
		values["name"] = *changes.Name
	}
	if changes.Color != nil {
		values["color"] = *changes.Color
	}
	if len(values) == 0 {
		return findCategory(db, userID, categoryID)
	}

	var category *model.Category
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Category{}).
			Where("id = ? AND user_id = ?", categoryID, userID).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrCategoryNotFound
		}
		category, err = findCategory(tx, userID, categoryID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes an owned category. Tasks pointing at it keep their
// category_id and are shown as uncategorized.
func (r *CategoryRepository) Delete(ctx context.Context, userID, categoryID string) error {
	db, err := session(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("id = ? AND user_id = ?", categoryID, userID).Delete(&model.Category{}).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func findCategory(db *gorm.DB, userID, categoryID string) (*model.Category, error) {
	var category model.Category
	err := db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}
