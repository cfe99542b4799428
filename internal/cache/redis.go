package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisEnvelope wraps cached bytes with the write time so maxAge reads work
// without a second round trip.
type redisEnvelope struct {
	StoredAt time.Time `json:"storedAt"`
	Value    []byte    `json:"value"`
}

// Redis is a Store backed by a shared redis instance. Keys are namespaced so
// several plugins can point at the same database.
type Redis struct {
	client    *redis.Client
	namespace string
	now       func() time.Time
}

// RedisConfig carries connection settings for the shared cache.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

// NewRedis connects to the configured instance and verifies it is reachable.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: connect redis at %s: %w", cfg.Addr, err)
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "scoreboard"
	}
	return &Redis{client: client, namespace: namespace, now: time.Now}, nil
}

func (r *Redis) Get(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Treat unreadable entries as misses and drop them.
		r.client.Del(ctx, r.key(key))
		return nil, false, nil
	}
	if maxAge > 0 && r.now().Sub(env.StoredAt) > maxAge {
		return nil, false, nil
	}
	return env.Value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	raw, err := json.Marshal(redisEnvelope{StoredAt: r.now(), Value: value})
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("cache: delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(key string) string {
	return r.namespace + ":" + key
}
