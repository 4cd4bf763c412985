// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ratelimit provides the injected rate limiter abstraction.

Three implementations share the [Limiter] contract:

  - [MemoryLimiter]: token buckets in process memory. Single instance only.
  - [RedisLimiter]: fixed-window counters in Redis. Shared across instances.
  - [WindowLimiter]: counts persisted rows newer than a cutoff. Best-effort.

Callers never reach for package-level state; each limiter is constructed at
startup and handed to the middleware or service that needs it.
*/
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether the next action for key is allowed.
//
// An error means the backing store failed. Callers decide whether to fail
// open or closed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Window describes "max events per period".
type Window struct {
	Max    int
	Period time.Duration
}

// RetryAfterSeconds is the hint sent back with a 429.
func (w Window) RetryAfterSeconds() int {
	seconds := int(w.Period / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}
