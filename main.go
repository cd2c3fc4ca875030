package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nicketronix/promptpilot-backend/config"
	"github.com/nicketronix/promptpilot-backend/internal/analyzer"
	"github.com/nicketronix/promptpilot-backend/internal/api"
	"github.com/nicketronix/promptpilot-backend/internal/database"
	"github.com/nicketronix/promptpilot-backend/internal/services"
	"github.com/nicketronix/promptpilot-backend/internal/storage"
	"github.com/nicketronix/promptpilot-backend/pkg/logger"
	"go.uber.org/zap"
)

// @title promptpilot-backend API
// @version 1.0
// @description Rewrites and scores user prompts with a language model and keeps the history.

// @host localhost:8080
// @BasePath /api

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Service:    "promptpilot-backend",
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	store, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("failed to set up storage", zap.Error(err))
	}

	users := services.NewUserService(store)
	if _, err := users.EnsureDefaultUser(ctx); err != nil {
		logger.Log.Fatal("failed to seed default user", zap.Error(err))
	}

	if cfg.OpenAIAPIKey == "" {
		logger.Log.Warn("OPENAI_API_KEY is not set; prompt analysis will fail")
	}
	promptAnalyzer := analyzer.NewOpenAIAnalyzer(analyzer.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout(),
	})

	gin.SetMode(cfg.GinMode)
	router := api.NewRouter(cfg, api.Services{
		Prompts: services.NewPromptService(store, promptAnalyzer),
		Users:   users,
	})

	logger.Log.Info("Server starting",
		zap.String("port", cfg.ServerPort),
		zap.String("storage", cfg.StorageDriver),
		zap.Bool("redis_cache", cfg.RedisEnabled()),
		zap.String("model", cfg.OpenAIModel),
	)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Log.Fatal("failed to run server", zap.Error(err))
	}
}

// newStorage builds the configured backend and wraps it in the redis cache when one is configured.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	var store storage.Storage
	if cfg.StorageDriver == config.StorageMemory {
		store = storage.NewMemStorage()
	} else {
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		store = storage.NewGormStorage(db)
	}

	if !cfg.RedisEnabled() {
		return store, nil
	}
	client, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return storage.NewCachedStorage(store, client), nil
}
