package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window counter: INCR on a key per window,
// with the key expiring when its window ends.
type RedisRateLimiter struct {
	client redis.UniversalClient
	config Config
	prefix string
	now    func() time.Time
}

func NewRedisRateLimiter(client redis.UniversalClient, prefix string, config Config) *RedisRateLimiter {
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	return &RedisRateLimiter{
		client: client,
		config: config,
		prefix: prefix,
		now:    time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.config.Limit <= 0 {
		return true, nil
	}

	window := l.now().UnixNano() / int64(l.config.Window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s:%d", l.prefix, key, window)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return incr.Val() <= int64(l.config.Limit), nil
}

// Reset clears every window of key.
func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	pattern := fmt.Sprintf("ratelimit:%s:%s:*", l.prefix, key)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}
