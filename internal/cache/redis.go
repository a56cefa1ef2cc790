package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"MarketLens/internal/model"
)

// RedisCache stores reports as JSON in Redis with a server-side TTL, so
// multiple replicas share one cache.
type RedisCache struct {
	client *goredis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a RedisCache and pings the server.
func NewRedisCache(addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*RedisCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("redis cache connected", zap.String("addr", addr))
	return &RedisCache{client: client, ttl: ttl, logger: logger}, nil
}

func (c *RedisCache) Get(ctx context.Context, key ReportKey) (*model.Report, bool) {
	data, err := c.client.Get(ctx, key.String()).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("redis get failed", zap.String("key", key.String()), zap.Error(err))
		}
		return nil, false
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		c.logger.Warn("redis cache entry corrupt", zap.String("key", key.String()), zap.Error(err))
		return nil, false
	}
	return &report, true
}

func (c *RedisCache) Set(ctx context.Context, key ReportKey, report *model.Report) {
	data, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("marshal report for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", key.String()), zap.Error(err))
	}
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error { return c.client.Close() }
