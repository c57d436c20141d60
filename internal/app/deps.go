package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"ielts-coach/internal/compat"
	"ielts-coach/internal/config"
	"ielts-coach/internal/exam"
	"ielts-coach/internal/gemini"
	"ielts-coach/internal/kv"
	"ielts-coach/internal/logger"
	"ielts-coach/internal/settings"
)

// Deps bundles the runtime dependencies of the server.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	KV       kv.Store
	Settings *settings.Store
	Exam     *exam.Service
	Sessions *exam.Registry
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	store, err := buildKV(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize settings storage: %w", err)
	}

	settingsStore := settings.NewStore(store, cfg.DefaultAPIKey)
	svc := &exam.Service{
		Settings:         settingsStore,
		Compat:           compat.NewClient(),
		Gemini:           gemini.NewClient(),
		FeedbackLanguage: cfg.FeedbackLanguage,
		Log:              log,
	}

	return Deps{
		Config:   cfg,
		Log:      log,
		KV:       store,
		Settings: settingsStore,
		Exam:     svc,
		Sessions: exam.NewRegistry(),
	}, nil
}

func buildKV(cfg config.Config, log *slog.Logger) (kv.Store, error) {
	switch cfg.KVProvider {
	case "sqlite":
		store, err := kv.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		log.Info("using SQLite settings storage", "path", cfg.SQLitePath)
		return store, nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when KV_PROVIDER=redis")
		}
		store, err := kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("using Redis settings storage", "addr", cfg.RedisAddr)
		return store, nil
	case "memory":
		log.Warn("using in-memory settings storage; settings will not survive a restart")
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("invalid KV_PROVIDER: %s (valid options: sqlite, redis, memory)", cfg.KVProvider)
	}
}
