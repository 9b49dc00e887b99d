// Package middleware provides request-scoped Fiber middleware: logging, rate limiting, tracing and metrics.
package middleware

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"jobboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when the counter store cannot be reached.
type FailPolicy int

const (
	// FailOpen lets the request through.
	FailOpen FailPolicy = iota
	// FailClosed answers 503.
	FailClosed
)

const rateLimitKeyPrefix = "rl:"

var errNoRateLimitStore = errors.New("rate limit store is not configured")

// rateLimitEnforced reports whether limits apply in the current APP_ENV.
// An unset APP_ENV counts as development.
func rateLimitEnforced() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development", "stress":
		return false
	}
	return true
}

func rateLimitKey(bucket, subject string) string {
	return rateLimitKeyPrefix + bucket + ":" + subject
}

// CheckRateLimit counts one hit for subject in bucket and reports whether it is
// still within limit for the fixed window that started with the first hit.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, bucket, subject string, limit int, window time.Duration) (bool, error) {
	if !rateLimitEnforced() {
		return true, nil
	}
	if rdb == nil {
		return false, errNoRateLimitStore
	}

	key := rateLimitKey(bucket, subject)
	hits, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		RedisErrors.WithLabelValues("rate_limit").Inc()
		return false, err
	}
	if hits == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			RedisErrors.WithLabelValues("rate_limit").Inc()
			Logger.WarnContext(ctx, "failed to set rate limit window", "key", key, "error", err)
		}
	}
	return hits <= int64(limit), nil
}

// retryAfter returns the seconds left in the subject's window, at least 1.
func retryAfter(ctx context.Context, rdb *redis.Client, bucket, subject string) int {
	if rdb == nil {
		return 1
	}
	ttl, err := rdb.TTL(ctx, rateLimitKey(bucket, subject)).Result()
	if err != nil || ttl <= time.Second {
		return 1
	}
	return int(ttl / time.Second)
}

// rateLimitSubject identifies the caller: the signed-in account when known, else the remote IP.
func rateLimitSubject(c *fiber.Ctx) string {
	if aid, ok := c.Locals(LocalAccountID).(uint); ok {
		return "account:" + strconv.FormatUint(uint64(aid), 10)
	}
	return "ip:" + c.IP()
}

// RateLimit allows limit requests per window and fails open when Redis is down.
// The optional name selects the counter bucket; it defaults to the request path.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy is RateLimit with an explicit failure policy.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		subject := rateLimitSubject(c)
		bucket := c.Path()
		if len(name) > 0 && name[0] != "" {
			bucket = name[0]
		}

		allowed, err := CheckRateLimit(ctx, rdb, bucket, subject, limit, window)
		switch {
		case err != nil && policy == FailClosed:
			Logger.WarnContext(ctx, "rate limit store unavailable, rejecting request",
				"bucket", bucket, "path", c.Path(), "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
				Error: "Service temporarily unavailable",
				Code:  models.CodeUnavailable,
			})
		case err != nil:
			Logger.DebugContext(ctx, "rate limit store unavailable, allowing request",
				"bucket", bucket, "error", err)
			return c.Next()
		case !allowed:
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter(ctx, rdb, bucket, subject)))
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, try again later",
				Code:  models.CodeRateLimited,
			})
		}
		return c.Next()
	}
}
