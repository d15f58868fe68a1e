// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package identity

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL        = time.Hour
	limiterPruneThreshold = 1024
	limiterPruneInterval  = 10 * time.Minute
)

// loginLimiter keeps one token bucket per email address. A bucket holds
// attempts tokens and refills one token every window/attempts.
type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    rate.Limit
	burst    int
	now      func() time.Time

	lastPrune time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newLoginLimiter(attempts int, window time.Duration) *loginLimiter {
	if attempts < 1 {
		attempts = 1
	}
	return &loginLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(window / time.Duration(attempts)),
		burst:    attempts,
		now:      time.Now,
	}
}

// Allow consumes one attempt for key.
func (l *loginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[key] = e
	}
	e.lastAccess = now
	l.pruneLocked(now)
	return e.limiter.AllowN(now, 1)
}

// pruneLocked drops buckets idle for an hour once the map grows. The scan
// runs at most once per limiterPruneInterval.
func (l *loginLimiter) pruneLocked(now time.Time) {
	if len(l.limiters) < limiterPruneThreshold || now.Sub(l.lastPrune) < limiterPruneInterval {
		return
	}
	l.lastPrune = now
	cutoff := now.Add(-limiterIdleTTL)
	for k, e := range l.limiters {
		if e.lastAccess.Before(cutoff) {
			delete(l.limiters, k)
		}
	}
}
