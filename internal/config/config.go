package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	DB       DatabaseConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Admin    AdminConfig
	Worker   WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// TelegramConfig contains bot credentials and delivery tuning.
// When WebhookURL is empty the bot falls back to long polling.
type TelegramConfig struct {
	Token        string
	WebhookURL   string
	WelcomeDelay time.Duration
	SessionTTL   time.Duration
	HelpContact  string
}

// AdminConfig contains dashboard login credentials. The password is kept in
// plain env form and bcrypt-hashed once at startup.
type AdminConfig struct {
	Username string
	Password string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	ViewSyncInterval time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Telegram
	cfg.Telegram = TelegramConfig{
		Token:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:  getEnv("TELEGRAM_WEBHOOK_URL", ""),
		HelpContact: getEnv("HELP_CONTACT", "support@shopmate.in"),
	}

	// Admin dashboard login
	cfg.Admin = AdminConfig{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Password: getEnv("ADMIN_PASSWORD", ""),
	}

	// Durations
	var err error
	if cfg.Telegram.WelcomeDelay, err = parseDurationEnv("WELCOME_MESSAGE_DELAY", "1s"); err != nil {
		return nil, fmt.Errorf("invalid WELCOME_MESSAGE_DELAY: %w", err)
	}
	if cfg.Telegram.SessionTTL, err = parseDurationEnv("SESSION_TTL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Worker.ViewSyncInterval, err = parseDurationEnv("VIEW_SYNC_INTERVAL", "30s"); err != nil {
		return nil, fmt.Errorf("invalid VIEW_SYNC_INTERVAL: %w", err)
	}

	// Basic validation — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}
	if cfg.Telegram.Token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for admin authentication")
	}
	if cfg.Admin.Password == "" {
		return nil, errors.New("ADMIN_PASSWORD must be set for admin authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
