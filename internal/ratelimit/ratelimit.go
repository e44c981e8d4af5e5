// Package ratelimit throttles invitation issuance per inviter.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "invitations:rate:"

// Limiter decides whether another event for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Noop allows everything.
type Noop struct{}

// Allow always returns true.
func (Noop) Allow(context.Context, string) (bool, error) { return true, nil }

// Redis is a fixed-window counter shared by every service instance.
type Redis struct {
	rdb    redis.UniversalClient
	log    *zap.SugaredLogger
	limit  int64
	window time.Duration
}

// NewRedis returns a limiter allowing limit events per window for each key.
func NewRedis(rdb redis.UniversalClient, log *zap.SugaredLogger, limit int64, window time.Duration) *Redis {
	return &Redis{rdb: rdb, log: log.Named("ratelimit.redis"), limit: limit, window: window}
}

// Allow increments the window counter for key. Redis failures fail open.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}

	k := keyPrefix + key
	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, r.window)
		return nil
	})
	if err != nil {
		r.log.Warnw("rate limit check failed, allowing", "error", err, "key", k)
		return true, fmt.Errorf("rate limit %s: %w", k, err)
	}

	return incr.Val() <= r.limit, nil
}
