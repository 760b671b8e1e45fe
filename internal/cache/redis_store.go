package cache

import (
	"context"
	"fmt"
	"time"

	"catalog-service/internal/config"
	"catalog-service/pkg/middleware"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "catalog:request:"

// RedisRequestIDStore keeps idempotency records in Redis so replays are detected across instances
type RedisRequestIDStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRequestIDStore wraps an existing client
func NewRedisRequestIDStore(client *redis.Client, logger *zap.Logger) *RedisRequestIDStore {
	return &RedisRequestIDStore{
		client: client,
		logger: logger,
	}
}

// NewRequestIDStore returns a Redis-backed store when USE_REDIS is set and Redis answers,
// and the in-memory store otherwise
func NewRequestIDStore(cfg *config.Config, logger *zap.Logger) middleware.RequestIDStore {
	if !cfg.UseRedis {
		logger.Info("Redis disabled (USE_REDIS=false), using in-memory request ID store")
		return middleware.NewInMemoryRequestIDStore()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, using in-memory request ID store",
			zap.String("host", cfg.RedisHost),
			zap.String("port", cfg.RedisPort),
			zap.Error(err),
		)
		_ = rdb.Close()
		return middleware.NewInMemoryRequestIDStore()
	}

	logger.Info("Redis request ID store initialized successfully",
		zap.String("host", cfg.RedisHost),
		zap.String("port", cfg.RedisPort),
		zap.Int("db", cfg.RedisDB),
	)
	return NewRedisRequestIDStore(rdb, logger)
}

// Reserve uses SETNX so only one instance claims a request id
func (s *RedisRequestIDStore) Reserve(ctx context.Context, requestID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+requestID, middleware.PendingMarker, ttl).Result()
	if err != nil {
		s.logger.Warn("Redis SetNX error", zap.String("request_id", requestID), zap.Error(err))
		return false, fmt.Errorf("redis setnx error: %w", err)
	}
	return ok, nil
}

func (s *RedisRequestIDStore) Store(ctx context.Context, requestID string, response []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+requestID, response, ttl).Err(); err != nil {
		s.logger.Warn("Redis Set error", zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (s *RedisRequestIDStore) Get(ctx context.Context, requestID string) ([]byte, error) {
	val, err := s.client.Get(ctx, keyPrefix+requestID).Bytes()
	if err == redis.Nil {
		return nil, middleware.ErrRequestIDNotFound
	}
	if err != nil {
		s.logger.Warn("Redis Get error", zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("redis get error: %w", err)
	}
	return val, nil
}

func (s *RedisRequestIDStore) Release(ctx context.Context, requestID string) error {
	if err := s.client.Del(ctx, keyPrefix+requestID).Err(); err != nil {
		s.logger.Warn("Redis Del error", zap.String("request_id", requestID), zap.Error(err))
		return fmt.Errorf("redis del error: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (s *RedisRequestIDStore) Close() error {
	return s.client.Close()
}
