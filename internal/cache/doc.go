// Wayfarer - Travel Destination Lists and Reviews
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package cache provides thread-safe in-memory caching with TTL support.

The list service caches the public-list listings for a short TTL
(lists.cache_ttl) and clears the cache on every list or review mutation.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Time-to-live (TTL) expiration, checked lazily on Get and swept periodically
  - Hit and miss counters exported as cache_hits_total / cache_misses_total
    labelled with the cache name

# Usage Example

	c := cache.New("public_lists", 30*time.Second)
	defer c.Close()

	if v, ok := c.Get("guest"); ok {
	    return v.([]models.PublicListSummary), nil
	}
	c.Set("guest", summaries)
*/
package cache
