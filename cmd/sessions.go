package cmd

import (
	"gorm.io/gorm"

	config "taskboard.com/taskboard/internal/configs"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/services"
)

// newSessionStore picks the session backend named by SESSION_STORE.
func newSessionStore(cfg config.Config, database *gorm.DB) (services.SessionStore, func(), error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return repository.NewSessionRepository(database), func() {}, nil
	}

	client, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRedisSessionRepository(client, cfg.RedisSessionPrefix), client.Close, nil
}
