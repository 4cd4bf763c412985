// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Counter counts persisted events for key created after cutoff.
type Counter interface {
	CountSince(ctx context.Context, key string, cutoff time.Time) (int, error)
}

// CounterFunc adapts a function to [Counter].
type CounterFunc func(ctx context.Context, key string, cutoff time.Time) (int, error)

// CountSince implements [Counter].
func (f CounterFunc) CountSince(ctx context.Context, key string, cutoff time.Time) (int, error) {
	return f(ctx, key, cutoff)
}

// WindowLimiter counts rows newer than now-period and compares to max.
//
// The count and the later insert are not atomic. Concurrent submissions can
// overshoot max by the number of requests in flight.
type WindowLimiter struct {
	counter Counter
	window  Window
	now     func() time.Time
}

// NewWindowLimiter builds a row-counting limiter.
func NewWindowLimiter(counter Counter, window Window) *WindowLimiter {
	return &WindowLimiter{counter: counter, window: window, now: time.Now}
}

// WithNow replaces the clock.
func (l *WindowLimiter) WithNow(now func() time.Time) *WindowLimiter {
	clone := *l
	clone.now = now
	return &clone
}

// Window returns the configured window.
func (l *WindowLimiter) Window() Window {
	return l.window
}

// Allow implements [Limiter].
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	cutoff := l.now().Add(-l.window.Period)

	count, err := l.counter.CountSince(ctx, key, cutoff)
	if err != nil {
		return false, fmt.Errorf("ratelimit: count since %s: %w", cutoff.Format(time.RFC3339), err)
	}

	return count < l.window.Max, nil
}
