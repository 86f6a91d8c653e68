package redisclient

import (
  "context"
  "time"
  "github.com/redis/go-redis/v9"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  "github.com/studysarthi/studysarthi-backend/internal/utils"
)

// Cache is a thin JSON-blob cache on redis. Construction is env-gated: with
// no REDIS_ADDR set, New returns (nil, nil) and every caller treats the nil
// cache as a miss.
type Cache struct {
  client *redis.Client
  log    *logger.Logger
}

func New(ctx context.Context, log *logger.Logger) (*Cache, error) {
  addr := utils.GetEnv("REDIS_ADDR", "", log)
  if addr == "" {
    log.Info("REDIS_ADDR not set, cache disabled")
    return nil, nil
  }
  cacheLog := log.With("client", "RedisCache")
  client := redis.NewClient(&redis.Options{
    Addr:     addr,
    Password: utils.GetEnv("REDIS_PASSWORD", "", log),
    DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
  })
  if err := client.Ping(ctx).Err(); err != nil {
    cacheLog.Error("Failed to ping redis", "error", err)
    return nil, err
  }
  cacheLog.Info("Connected to redis", "addr", addr)
  return &Cache{client: client, log: cacheLog}, nil
}

// Get returns the cached payload, or ("", false) on a miss or any error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
  if c == nil {
    return "", false
  }
  val, err := c.client.Get(ctx, key).Result()
  if err != nil {
    if err != redis.Nil {
      c.log.Warn("Cache read failed", "key", key, "error", err)
    }
    return "", false
  }
  return val, true
}

func (c *Cache) Set(ctx context.Context, key, val string, ttl time.Duration) {
  if c == nil {
    return
  }
  if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
    c.log.Warn("Cache write failed", "key", key, "error", err)
  }
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
  if c == nil || len(keys) == 0 {
    return
  }
  if err := c.client.Del(ctx, keys...).Err(); err != nil {
    c.log.Warn("Cache invalidation failed", "keys", keys, "error", err)
  }
}

func (c *Cache) Close() error {
  if c == nil {
    return nil
  }
  return c.client.Close()
}
