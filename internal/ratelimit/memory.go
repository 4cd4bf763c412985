// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type memoryClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter keeps one token bucket per key in process memory.
//
// # Concurrency
//
// Safe for concurrent use. State is not shared between server instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*memoryClient
	limit   rate.Limit
	burst   int
	ttl     time.Duration
}

// NewMemoryLimiter creates a limiter refilling at limit tokens/sec up to burst.
//
// A background sweep removes keys idle for longer than ttl. It stops when ctx
// is cancelled.
func NewMemoryLimiter(ctx context.Context, limit rate.Limit, burst int, sweepEvery, ttl time.Duration) *MemoryLimiter {
	limiter := &MemoryLimiter{
		clients: make(map[string]*memoryClient),
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
	}

	go func() {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				limiter.Sweep(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return limiter
}

// NewWindowedMemoryLimiter allows w.Max events per w.Period with a full
// bucket at start.
func NewWindowedMemoryLimiter(ctx context.Context, w Window, sweepEvery time.Duration) *MemoryLimiter {
	return NewMemoryLimiter(ctx, rate.Every(w.Period/time.Duration(w.Max)), w.Max, sweepEvery, w.Period)
}

// Allow implements [Limiter]. It never returns an error.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, found := l.clients[key]
	if !found {
		client = &memoryClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = client
	}

	client.lastSeen = time.Now()
	return client.limiter.Allow(), nil
}

// Sweep drops keys that have been idle for longer than the TTL.
func (l *MemoryLimiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, client := range l.clients {
		if now.Sub(client.lastSeen) > l.ttl {
			delete(l.clients, key)
		}
	}
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
