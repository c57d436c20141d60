package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the server.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Settings persistence
	KVProvider    string `env:"KV_PROVIDER" envDefault:"sqlite"` // "sqlite", "redis" or "memory"
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/ielts-coach.db"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// AI defaults
	DefaultAPIKey string `env:"AI_API_KEY"` // used until the user saves a credential
	// FeedbackLanguage is the language for evaluative commentary in
	// writing feedback; corrected essays stay in English.
	FeedbackLanguage string `env:"FEEDBACK_LANGUAGE" envDefault:"Simplified Chinese"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
