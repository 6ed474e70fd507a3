package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"anoa.com/mentoria/pkg/database"
	"github.com/joho/godotenv"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
	LogLevel       string

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	RedisURL string

	JWTSecret string
	JWTTTL    time.Duration

	CloudinaryURL string
	UploadFolder  string

	CounterSyncInterval time.Duration
	SeedAdmin           bool
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		DBDriver:    getEnv("DB_DRIVER", database.DriverSQLite),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "mentoria.db"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		UploadFolder:  getEnv("UPLOAD_FOLDER", "mentoria/documents"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	if cfg.DBDriver == database.DriverPostgres && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = database.PostgresDSN(
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			os.Getenv("DB_PASS"),
			getEnv("DB_NAME", "mentoria"),
			getEnv("DB_PORT", "5432"),
		)
	}

	var err error
	cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.CounterSyncInterval, err = time.ParseDuration(getEnv("COUNTER_SYNC_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid COUNTER_SYNC_INTERVAL: %w", err)
	}

	cfg.SeedAdmin = getEnv("SEED_ADMIN", "") == "true" || cfg.IsDevelopment()

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
