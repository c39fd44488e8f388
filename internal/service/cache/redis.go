package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/blend-service/internal/metrics"
)

const defaultRedisOpTimeout = 500 * time.Millisecond

// RedisConfig holds connection settings for NewRedisClient.
type RedisConfig struct {
	Addrs        []string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRedisClient creates a universal client and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:           cfg.Addrs,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: 5 * time.Minute,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Redis is a JSON-encoding Cache backed by Redis, shared across replicas.
// Redis failures degrade to cache misses.
type Redis[V any] struct {
	client    redis.UniversalClient
	name      string
	prefix    string
	ttl       time.Duration
	opTimeout time.Duration
}

// NewRedis creates a Redis cache storing keys under prefix.
func NewRedis[V any](client redis.UniversalClient, name, prefix string, ttl time.Duration) *Redis[V] {
	return &Redis[V]{
		client:    client,
		name:      name,
		prefix:    prefix,
		ttl:       ttl,
		opTimeout: defaultRedisOpTimeout,
	}
}

func (r *Redis[V]) key(k string) string {
	return r.prefix + k
}

func (r *Redis[V]) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.opTimeout)
}

// Get retrieves and decodes a value.
func (r *Redis[V]) Get(key string) (V, bool) {
	var value V
	ctx, cancel := r.ctx()
	defer cancel()

	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation(r.name, "get", "miss")
		return value, false
	}
	if err != nil {
		log.Warn().Err(err).Str("cache", r.name).Msg("Redis get failed")
		metrics.RecordCacheOperation(r.name, "get", "error")
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn().Err(err).Str("cache", r.name).Str("key", key).Msg("Discarding undecodable cache entry")
		metrics.RecordCacheOperation(r.name, "get", "error")
		return value, false
	}

	metrics.RecordCacheOperation(r.name, "get", "hit")
	return value, true
}

// Set encodes and stores a value with the configured TTL.
func (r *Redis[V]) Set(key string, value V) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("cache", r.name).Msg("Redis value encoding failed")
		metrics.RecordCacheOperation(r.name, "set", "error")
		return
	}

	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), raw, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("cache", r.name).Msg("Redis set failed")
		metrics.RecordCacheOperation(r.name, "set", "error")
		return
	}
	metrics.RecordCacheOperation(r.name, "set", "success")
}

// Invalidate deletes a key.
func (r *Redis[V]) Invalidate(key string) {
	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		log.Warn().Err(err).Str("cache", r.name).Msg("Redis delete failed")
		return
	}
	metrics.RecordCacheOperation(r.name, "invalidate", "success")
}

// Clear deletes every key under the prefix.
func (r *Redis[V]) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*r.opTimeout)
	defer cancel()

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Str("cache", r.name).Msg("Redis scan failed")
		return
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			log.Warn().Err(err).Str("cache", r.name).Msg("Redis clear failed")
			return
		}
	}
	metrics.RecordCacheOperation(r.name, "clear", "success")
}

// Stop is a no-op; the client is owned and closed by the caller.
func (r *Redis[V]) Stop() {}
