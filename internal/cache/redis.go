// Package cache provides the optional Redis-backed catalog snapshot cache.
//
// The cache holds a single key: the JSON-encoded active product list, with a
// TTL matching the configured snapshot freshness window. It is strictly
// best-effort — any Redis failure is treated as a miss and the caller falls
// back to the sheet fetch, so correctness never depends on Redis being up.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mechvault/catalog/internal/catalog"
	"github.com/mechvault/catalog/internal/config"
)

// snapshotKey holds the full active product list as one JSON blob.
// A single global snapshot is deliberate: the catalog is small and every
// accessor query derives from the same list.
const snapshotKey = "catalog:snapshot"

// Redis is a catalog.Snapshot backed by a Redis instance.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection with a ping.
func New(cfg config.CacheConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Redis{client: client, ttl: cfg.TTL}, nil
}

// Get returns the cached snapshot, or ok=false on a miss or any Redis error.
func (r *Redis) Get(ctx context.Context) ([]catalog.Product, bool) {
	data, err := r.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache: snapshot read failed, falling back to sheet", "error", err)
		}
		return nil, false
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		slog.Warn("cache: snapshot unmarshal failed, falling back to sheet", "error", err)
		return nil, false
	}
	return products, true
}

// Set stores a fresh snapshot with the configured TTL. Failures are logged
// and ignored; the next Get simply misses.
func (r *Redis) Set(ctx context.Context, products []catalog.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		slog.Warn("cache: snapshot marshal failed", "error", err)
		return
	}
	if err := r.client.Set(ctx, snapshotKey, data, r.ttl).Err(); err != nil {
		slog.Warn("cache: snapshot write failed", "error", err)
	}
}

// Invalidate drops the current snapshot so the next read hits the sheet.
func (r *Redis) Invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, snapshotKey).Err(); err != nil {
		slog.Warn("cache: snapshot invalidation failed", "error", err)
	}
}

// Close releases the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
