// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package authz

import (
	"sync"
	"time"

	"github.com/tomtom215/wayfarer/internal/metrics"
)

// enforcementCache remembers Casbin decisions for ttl.
type enforcementCache struct {
	ttl      time.Duration
	mu       sync.RWMutex
	items    map[string]cacheItem
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

type cacheItem struct {
	allowed   bool
	expiresAt time.Time
}

func newEnforcementCache(ttl time.Duration) *enforcementCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c := &enforcementCache{
		ttl:      ttl,
		items:    make(map[string]cacheItem),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *enforcementCache) key(role, object, action string) string {
	return role + "\x00" + object + "\x00" + action
}

func (c *enforcementCache) get(role, object, action string) (bool, bool) {
	c.mu.RLock()
	item, ok := c.items[c.key(role, object, action)]
	c.mu.RUnlock()

	if !ok || c.now().After(item.expiresAt) {
		metrics.CacheMisses.WithLabelValues("authz").Inc()
		return false, false
	}
	metrics.CacheHits.WithLabelValues("authz").Inc()
	return item.allowed, true
}

func (c *enforcementCache) set(role, object, action string, allowed bool) {
	c.mu.Lock()
	c.items[c.key(role, object, action)] = cacheItem{allowed: allowed, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *enforcementCache) clear() {
	c.mu.Lock()
	c.items = make(map[string]cacheItem)
	c.mu.Unlock()
}

func (c *enforcementCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *enforcementCache) cleanup() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *enforcementCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, k)
		}
	}
}

// stop is idempotent.
func (c *enforcementCache) stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}
