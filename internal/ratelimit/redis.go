// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter stored in Redis.
//
// The first INCR in a window sets the expiry, so the counter resets
// window.Period after the first event.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	window Window
}

// NewRedisLimiter builds a limiter whose keys live under prefix.
func NewRedisLimiter(client redis.Cmdable, prefix string, window Window) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, window: window}
}

// Allow implements [Limiter].
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit: incr %s: %w", redisKey, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window.Period).Err(); err != nil {
			return false, fmt.Errorf("ratelimit: expire %s: %w", redisKey, err)
		}
	}

	return count <= int64(l.window.Max), nil
}
