package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"jobboard/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// GetJSON decodes the value at key into dest. A miss, or no configured client, is (false, nil).
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores v as JSON under key for ttl.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, raw, ttl).Err()
}

// Aside is a read-through lookup: a hit fills dest from Redis, a miss runs fetch
// to fill dest and then caches it. Redis errors only cost the cache, never the
// request; fetch errors are returned unchanged and nothing is cached.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	hit, err := GetJSON(ctx, key, dest)
	if err != nil {
		warn(ctx, "cache read failed", key, err)
	} else if hit {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}
	if err := SetJSON(ctx, key, dest, ttl); err != nil {
		warn(ctx, "cache write failed", key, err)
	}
	return nil
}

func warn(ctx context.Context, msg, key string, err error) {
	middleware.Logger.WarnContext(ctx, msg, slog.String("key", key), slog.String("error", err.Error()))
}
