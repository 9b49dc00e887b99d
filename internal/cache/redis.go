// Package cache holds the shared Redis client and the read-through JSON cache built on it.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"jobboard/internal/middleware"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

const pingTimeout = 5 * time.Second

var client *redis.Client

// errorCounter counts failed commands in RedisErrors. Cache misses are not failures.
type errorCounter struct{}

func countFailure(err error, label string) {
	if err != nil && !errors.Is(err, redis.Nil) {
		middleware.RedisErrors.WithLabelValues(label).Inc()
	}
}

func (errorCounter) DialHook(next redis.DialHook) redis.DialHook { return next }

func (errorCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		countFailure(err, cmd.Name())
		return err
	}
}

func (errorCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		countFailure(err, "pipeline")
		return err
	}
}

// options accepts either host:port or a redis:// URL. The maintenance
// notifications handshake is disabled; older servers and miniredis reject it.
func options(addr string) (*redis.Options, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}
	opts.MaintNotificationsConfig = &maintnotifications.Config{Mode: maintnotifications.ModeDisabled}
	return opts, nil
}

// InitRedis connects to addr and installs the result as the package client.
// Redis is optional: when addr is empty, malformed or unreachable it logs why
// and returns nil, and the app runs without caching, revocation, rate limits or events.
func InitRedis(addr string) *redis.Client {
	client = nil
	addr = strings.TrimSpace(addr)
	if addr == "" {
		middleware.Logger.Info("REDIS_URL not set, running without Redis")
		return nil
	}

	opts, err := options(addr)
	if err != nil {
		middleware.Logger.Warn("invalid REDIS_URL, running without Redis", slog.String("error", err.Error()))
		return nil
	}

	c := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unreachable, running without Redis",
			slog.String("addr", opts.Addr), slog.String("error", err.Error()))
		_ = c.Close()
		return nil
	}

	SetClient(c)
	middleware.Logger.Info("Redis connected", slog.String("addr", opts.Addr))
	return c
}

// SetClient installs c as the package client. Tests pass a miniredis-backed client, or nil.
func SetClient(c *redis.Client) {
	if c != nil {
		c.AddHook(errorCounter{})
	}
	client = c
}

// GetClient returns the package client, which may be nil.
func GetClient() *redis.Client {
	return client
}
