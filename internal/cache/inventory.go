package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"jobboard/internal/middleware"
)

// Every cached value lives under the "jobboard:" namespace.
const (
	namespace     = "jobboard:"
	JobFiltersKey = namespace + "jobs:filters"
)

// TTLs per cached value. Writers invalidate explicitly; the TTL bounds staleness
// when an invalidation is lost.
const (
	JobTTL        = 10 * time.Minute
	PrincipalTTL  = 5 * time.Minute
	JobFiltersTTL = 10 * time.Minute
)

// JobKey caches a job with its employer.
func JobKey(jobID uint) string {
	return namespace + "job:" + strconv.FormatUint(uint64(jobID), 10)
}

// PrincipalKey caches an account's resolved principal.
func PrincipalKey(accountID uint) string {
	return namespace + "principal:" + strconv.FormatUint(uint64(accountID), 10)
}

// Invalidate deletes keys. Failures are logged; the TTL cleans up after them.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed",
			slog.Any("keys", keys), slog.String("error", err.Error()))
	}
}

// InvalidateJob drops the cached job and the filter lists derived from all jobs.
func InvalidateJob(ctx context.Context, jobID uint) {
	Invalidate(ctx, JobKey(jobID), JobFiltersKey)
}

func InvalidatePrincipal(ctx context.Context, accountID uint) {
	Invalidate(ctx, PrincipalKey(accountID))
}
