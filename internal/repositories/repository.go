package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "taskboard.com/taskboard/internal/errors"
)

type Clock func() time.Time

type Option func(*settings)

type settings struct {
	now Clock
}

// WithClock replaces the time source used for created_at/updated_at.
func WithClock(clock Clock) Option {
	return func(s *settings) {
		s.now = clock
	}
}

func newSettings(opts []Option) settings {
	s := settings{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// session returns a context-bound handle, failing closed when the store was
// never configured.
func session(ctx context.Context, db *gorm.DB) (*gorm.DB, error) {
	if db == nil {
		return nil, apperrors.ErrStoreUnavailable
	}
	return db.WithContext(ctx), nil
}
