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

var ErrUserNotFound = errors.New("user not found")

// UserRepository handles CRUD for users.
type UserRepository struct {
	db  *gorm.DB
	now Clock
}

func NewUserRepository(db *gorm.DB, opts ...Option) *UserRepository {
	s := newSettings(opts)
	return &UserRepository{db: db, now: s.now}
}

// Create inserts a user. A duplicate email yields ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing > 0 {
		return nil, apperrors.ErrEmailTaken
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    r.now(),
	}
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email = ?", email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id = ?", id)
}

func (r *UserRepository) findBy(ctx context.Context, query string, arg string) (*model.User, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = db.Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
