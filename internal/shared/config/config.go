package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Config struct {
	Port               string
	Environment        string
	JWTSecret          string
	DB                 Database
	RedisAddr          string
	KafkaBroker        string
	CasbinModelPath    string
	BootstrapToken     string
	ConnectRetries     int
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("APP_ENV", "development"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		DB: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "hrms"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:        getEnv("KAFKA_BROKER", ""),
		CasbinModelPath:    getEnv("CASBIN_MODEL_PATH", "internal/rbac/infra/model.conf"),
		BootstrapToken:     getEnv("BOOTSTRAP_TOKEN", ""),
		ConnectRetries:     getEnvInt("CONNECT_RETRIES", 5),
		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		OutboxBatchSize:    getEnvInt("OUTBOX_BATCH_SIZE", 50),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.ConnectRetries <= 0 {
		return fmt.Errorf("CONNECT_RETRIES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
