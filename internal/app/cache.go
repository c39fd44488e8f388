package app

import (
	"context"
	"time"

	"github.com/guttosm/blend-service/config"
	"github.com/guttosm/blend-service/internal/domain/model"
	"github.com/guttosm/blend-service/internal/middleware"
	"github.com/guttosm/blend-service/internal/service/cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	estimateCacheName   = "estimates"
	estimateCachePrefix = "blend:estimate:"
	idempotencyName     = "idempotency"
	idempotencyPrefix   = "blend:idempotency:"
	redisConnectTimeout = 5 * time.Second
)

// CacheComponents holds the gateway estimate cache and the store of
// idempotent responses.
type CacheComponents struct {
	Estimates   cache.Cache[model.Attributes]
	Idempotency cache.Cache[*middleware.StoredResponse]
	redis       redis.UniversalClient
}

// InitializeCache creates both caches. Redis is used when enabled and
// reachable so replicas share estimates and replays; otherwise in-process
// TTL caches.
func InitializeCache(ctx context.Context, redisCfg config.RedisConfig, gatewayCfg config.GatewayConfig) *CacheComponents {
	if redisCfg.Enabled && len(redisCfg.Addrs) > 0 {
		connectCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		defer cancel()

		client, err := cache.NewRedisClient(connectCtx, cache.RedisConfig{
			Addrs:        redisCfg.Addrs,
			Password:     redisCfg.Password,
			DB:           redisCfg.DB,
			PoolSize:     redisCfg.PoolSize,
			DialTimeout:  redisConnectTimeout,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		})
		if err == nil {
			log.Info().Strs("addrs", redisCfg.Addrs).Msg("Connected to Redis estimate cache")
			return &CacheComponents{
				Estimates:   cache.NewRedis[model.Attributes](client, estimateCacheName, estimateCachePrefix, gatewayCfg.CacheTTL),
				Idempotency: cache.NewRedis[*middleware.StoredResponse](client, idempotencyName, idempotencyPrefix, middleware.IdempotencyKeyTTL),
				redis:       client,
			}
		}
		log.Warn().Err(err).Msg("Redis unavailable - using in-process caches")
	}

	size := gatewayCfg.CacheSize
	if size <= 0 {
		size = 1000
	}
	ttl := gatewayCfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CacheComponents{
		Estimates:   cache.NewTTL[model.Attributes](estimateCacheName, size, ttl),
		Idempotency: middleware.NewIdempotencyCache(),
	}
}

// Close stops the cache and releases the Redis connection.
func (c *CacheComponents) Close() {
	if c == nil {
		return
	}
	if c.Estimates != nil {
		c.Estimates.Stop()
	}
	if c.Idempotency != nil {
		c.Idempotency.Stop()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}
