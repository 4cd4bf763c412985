// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hanqa/internal/ratelimit"
)

/*
TestMemoryLimiter_Burst verifies that each key gets its own bucket.
*/
func TestMemoryLimiter_Burst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	limiter := ratelimit.NewWindowedMemoryLimiter(ctx, ratelimit.Window{Max: 3, Period: time.Minute}, time.Hour)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, allowed)
	assert.Equal(t, 2, limiter.Len())
}

/*
TestMemoryLimiter_Sweep verifies idle keys are dropped.
*/
func TestMemoryLimiter_Sweep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	limiter := ratelimit.NewMemoryLimiter(ctx, 1, 1, time.Hour, time.Minute)
	_, _ = limiter.Allow(ctx, "a")

	limiter.Sweep(time.Now())
	assert.Equal(t, 1, limiter.Len())

	limiter.Sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, limiter.Len())
}

/*
TestRedisLimiter_FixedWindow verifies INCR/EXPIRE semantics against miniredis.
*/
func TestRedisLimiter_FixedWindow(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	limiter := ratelimit.NewRedisLimiter(client, "ratelimit:probe:", ratelimit.Window{Max: 2, Period: time.Minute})

	for _, want := range []bool{true, true, false} {
		allowed, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.Equal(t, want, allowed)
	}

	assert.Equal(t, time.Minute, server.TTL("ratelimit:probe:1.2.3.4"))

	server.FastForward(61 * time.Second)

	allowed, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

/*
TestRedisLimiter_StoreDown verifies that backend failures surface as errors.
*/
func TestRedisLimiter_StoreDown(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	server.Close()

	limiter := ratelimit.NewRedisLimiter(client, "rl:", ratelimit.Window{Max: 1, Period: time.Minute})
	_, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
}

/*
TestWindowLimiter verifies the cutoff and the strict "count < max" comparison.
*/
func TestWindowLimiter(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	var gotCutoff time.Time
	var gotKey string

	counter := ratelimit.CounterFunc(func(_ context.Context, key string, cutoff time.Time) (int, error) {
		gotKey, gotCutoff = key, cutoff
		if key == "busy" {
			return 10, nil
		}
		return 9, nil
	})

	limiter := ratelimit.NewWindowLimiter(counter, ratelimit.Window{Max: 10, Period: time.Hour}).
		WithNow(func() time.Time { return now })

	allowed, err := limiter.Allow(context.Background(), "quiet")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, "quiet", gotKey)
	assert.Equal(t, now.Add(-time.Hour), gotCutoff)

	allowed, err = limiter.Allow(context.Background(), "busy")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 3600, limiter.Window().RetryAfterSeconds())
}

/*
TestWindowLimiter_CounterError verifies store failures propagate.
*/
func TestWindowLimiter_CounterError(t *testing.T) {
	failing := ratelimit.CounterFunc(func(context.Context, string, time.Time) (int, error) {
		return 0, errors.New("db down")
	})

	_, err := ratelimit.NewWindowLimiter(failing, ratelimit.Window{Max: 1, Period: time.Minute}).
		Allow(context.Background(), "k")
	assert.ErrorContains(t, err, "db down")
}
