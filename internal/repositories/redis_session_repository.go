package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	model "taskboard.com/taskboard/internal/models"
)

// RedisSessionRepository keeps live sessions as expiring redis keys holding
// the owning user id.
type RedisSessionRepository struct {
	client rueidis.Client
	prefix string
	now    Clock
}

func NewRedisSessionRepository(client rueidis.Client, prefix string, opts ...Option) *RedisSessionRepository {
	s := newSettings(opts)
	return &RedisSessionRepository{
		client: client,
		prefix: prefix,
		now:    s.now,
	}
}

func (r *RedisSessionRepository) Save(ctx context.Context, s model.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl < time.Second {
		return fmt.Errorf("save session: already expired")
	}

	cmd := r.client.B().Setex().Key(r.key(s.ID)).Seconds(int64(ttl / time.Second)).Value(s.UserID).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*model.Session, error) {
	cmd := r.client.B().Get().Key(r.key(id)).Build()
	userID, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &model.Session{ID: id, UserID: userID}, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	cmd := r.client.B().Del().Key(r.key(id)).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) key(id string) string {
	return r.prefix + id
}
