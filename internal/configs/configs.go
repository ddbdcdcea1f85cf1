package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionStoreSQL   = "sql"
	SessionStoreRedis = "redis"

	minAuthSecretLength = 32
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	AuthSecret             string
	SessionTTL             time.Duration
	SessionStore           string
	RedisAddr              string
	RedisSessionPrefix     string
	RateLimit              int
	CookieSecure           bool
	ShutdownTimeoutSeconds int
}

// Load reads the configuration from the environment. DATABASE_DSN and
// AUTH_SECRET have no defaults: credentials only ever come from the
// environment.
func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	sessionTTLHours, err := getEnvAsInt("SESSION_TTL_HOURS", 24*7)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}
	cookieSecure, err := getEnvAsBool("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:         strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
		DatabaseDSN:            strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		AuthSecret:             os.Getenv("AUTH_SECRET"),
		SessionTTL:             time.Duration(sessionTTLHours) * time.Hour,
		SessionStore:           strings.ToLower(getEnv("SESSION_STORE", SessionStoreSQL)),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisSessionPrefix:     getEnv("REDIS_SESSION_PREFIX", "taskboard:session:"),
		RateLimit:              rateLimit,
		CookieSecure:           cookieSecure,
		ShutdownTimeoutSeconds: shutdownTimeout,
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres)
	}
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if len(cfg.AuthSecret) < minAuthSecretLength {
		return fmt.Errorf("AUTH_SECRET must be at least %d bytes", minAuthSecretLength)
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be greater than 0")
	}
	if cfg.SessionStore != SessionStoreSQL && cfg.SessionStore != SessionStoreRedis {
		return fmt.Errorf("SESSION_STORE must be %q or %q", SessionStoreSQL, SessionStoreRedis)
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s", key)
		}
		return b, nil
	}
	return defaultVal, nil
}
