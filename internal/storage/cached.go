package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nicketronix/promptpilot-backend/internal/models"
	"github.com/nicketronix/promptpilot-backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	PromptCacheKeyPrefix = "prompt:id:"
	PromptCacheDuration  = 24 * time.Hour
	UserCacheKeyPrefix   = "user:id:"
	UserCacheDuration    = time.Hour
)

// CachedStorage puts a redis read-through cache in front of single-record
// lookups. Records never change after creation, so entries are never
// invalidated; they only expire. Redis failures fall back to the backend.
type CachedStorage struct {
	Storage
	redis *redis.Client
}

func NewCachedStorage(backend Storage, client *redis.Client) *CachedStorage {
	return &CachedStorage{Storage: backend, redis: client}
}

func (s *CachedStorage) GetPrompt(ctx context.Context, id uint) (*models.Prompt, error) {
	cacheKey := fmt.Sprintf("%s%d", PromptCacheKeyPrefix, id)

	var prompt models.Prompt
	if s.getCached(ctx, cacheKey, &prompt) {
		return &prompt, nil
	}

	p, err := s.Storage.GetPrompt(ctx, id)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, cacheKey, p, PromptCacheDuration)
	return p, nil
}

func (s *CachedStorage) GetUser(ctx context.Context, id uint) (*models.User, error) {
	cacheKey := fmt.Sprintf("%s%d", UserCacheKeyPrefix, id)

	// Password hashes stay out of redis, so neither path returns one.
	var user models.User
	if s.getCached(ctx, cacheKey, &user) {
		return &user, nil
	}

	u, err := s.Storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Password = ""
	s.setCached(ctx, cacheKey, u, UserCacheDuration)
	return u, nil
}

func (s *CachedStorage) getCached(ctx context.Context, key string, dst interface{}) bool {
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		logger.Log.Warn("Cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CachedStorage) setCached(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

var _ Storage = (*CachedStorage)(nil)
