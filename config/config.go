package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// StateBackend определяет, где хранится снимок турнира.
type StateBackend string

const (
	BackendFile     StateBackend = "file"
	BackendPostgres StateBackend = "postgres"
	BackendSQLite   StateBackend = "sqlite"
	BackendR2       StateBackend = "r2"
	BackendMemory   StateBackend = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort   int
	JWTSecretKey string

	// Ровно одно из двух: пароль в открытом виде (хешируется при старте) или готовый bcrypt-хеш.
	AdminPassword     string
	AdminPasswordHash string

	StateBackend    StateBackend
	StateFile       string
	DatabaseURL     string
	SQLitePath      string
	DefaultCapacity int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2Endpoint        string
	R2StateKey        string

	CORSAllowedOrigins []string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Отсутствие .env не ошибка.
	_ = godotenv.Load()

	cfg := &Config{
		JWTSecretKey:      os.Getenv("JWT_SECRET_KEY"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		StateBackend:      StateBackend(strings.ToLower(getEnvOrDefault("STATE_BACKEND", string(BackendFile)))),
		StateFile:         getEnvOrDefault("STATE_FILE", "data.json"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        getEnvOrDefault("SQLITE_PATH", "tournament.db"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2Endpoint:        os.Getenv("R2_ENDPOINT"),
		R2StateKey:        getEnvOrDefault("R2_STATE_KEY", "tournament/state.json"),
	}

	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("either ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}

	port, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	capacity, err := strconv.Atoi(getEnvOrDefault("DEFAULT_CAPACITY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CAPACITY environment variable: %w", err)
	}
	if capacity < 2 {
		return nil, fmt.Errorf("DEFAULT_CAPACITY must be at least 2, got %d", capacity)
	}
	cfg.DefaultCapacity = capacity

	for _, origin := range strings.Split(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if err := cfg.validateBackend(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validateBackend() error {
	switch c.StateBackend {
	case BackendFile:
		if c.StateFile == "" {
			return fmt.Errorf("STATE_FILE must not be empty for the file backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set (required by the postgres backend)")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty for the sqlite backend")
		}
	case BackendR2:
		if c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2BucketName == "" {
			return fmt.Errorf("R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required by the r2 backend")
		}
		if c.R2AccountID == "" && c.R2Endpoint == "" {
			return fmt.Errorf("R2_ACCOUNT_ID or R2_ENDPOINT is required by the r2 backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q", c.StateBackend)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
