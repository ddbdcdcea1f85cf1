package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	model "taskboard.com/taskboard/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps live sessions in the relational store.
type SessionRepository struct {
	db  *gorm.DB
	now Clock
}

func NewSessionRepository(db *gorm.DB, opts ...Option) *SessionRepository {
	s := newSettings(opts)
	return &SessionRepository{db: db, now: s.now}
}

func (r *SessionRepository) Save(ctx context.Context, s model.Session) error {
	db, err := session(ctx, r.db)
	if err != nil {
		return err
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now()
	}
	if err := db.Create(&s).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find returns a session that has not expired yet.
func (r *SessionRepository) Find(ctx context.Context, id string) (*model.Session, error) {
	db, err := session(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var s model.Session
	err = db.Where("id = ? AND expires_at > ?", id, r.now()).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	db, err := session(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Where("id = ?", id).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
