// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tasteprofile/internal/metrics"
	"github.com/tomtom215/tasteprofile/internal/models"
)

// DefaultTTL is how long a cached response stays valid.
const DefaultTTL = 5 * time.Minute

// Entry is one cached upstream response.
type Entry struct {
	Items    []string
	CachedAt time.Time
}

// Cache stores normalized upstream responses keyed by query signature.
//
// Expired entries are removed lazily when read; there is no background
// sweep. Item slices are copied on Put and on Get so callers never share
// backing arrays with the cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time

	statsMu sync.Mutex
	stats   Stats
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// New creates a cache whose entries expire ttl after they are stored.
// A non-positive ttl selects DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns a copy of the items cached for sig.
//
// Returns (nil, false) when the signature was never stored or its entry
// is older than the TTL. Expired entries are deleted and counted as both
// a miss and an eviction.
func (c *Cache) Get(sig models.QuerySignature) ([]string, bool) {
	key := GenerateKey(sig)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.now().Sub(entry.CachedAt) >= c.ttl {
		c.mu.Lock()
		// another reader may have replaced it with a fresh entry meanwhile
		if cur, ok := c.entries[key]; ok && cur.CachedAt.Equal(entry.CachedAt) {
			delete(c.entries, key)
		}
		size := len(c.entries)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction(size)
		return nil, false
	}

	c.recordHit()
	return cloneItems(entry.Items), true
}

// Peek is Get without touching the statistics or evicting. Expired
// entries report false.
func (c *Cache) Peek(sig models.QuerySignature) ([]string, bool) {
	key := GenerateKey(sig)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || c.now().Sub(entry.CachedAt) >= c.ttl {
		return nil, false
	}
	return cloneItems(entry.Items), true
}

// Put stores a copy of items under sig, replacing any previous entry.
func (c *Cache) Put(sig models.QuerySignature, items []string) {
	key := GenerateKey(sig)

	c.mu.Lock()
	c.entries[key] = Entry{
		Items:    cloneItems(items),
		CachedAt: c.now(),
	}
	size := len(c.entries)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.TotalKeys = int64(size)
	c.statsMu.Unlock()
	metrics.CacheSize.Set(float64(size))
}

// Len returns the number of stored entries, including expired ones not yet read.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.stats.Evictions += evictions
	c.stats.TotalKeys = 0
	c.statsMu.Unlock()
	metrics.CacheEvictions.Add(float64(evictions))
	metrics.CacheSize.Set(0)
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
	metrics.CacheHits.Inc()
}

func (c *Cache) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
	metrics.CacheMisses.Inc()
}

func (c *Cache) recordEviction(size int) {
	c.statsMu.Lock()
	c.stats.Evictions++
	c.stats.TotalKeys = int64(size)
	c.statsMu.Unlock()
	metrics.CacheEvictions.Inc()
	metrics.CacheSize.Set(float64(size))
}

// GenerateKey derives a compact map key by hashing the JSON encoding of the
// canonical signature.
func GenerateKey(sig models.QuerySignature) string {
	data, err := json.Marshal(sig.Canonical())
	if err != nil {
		return "taste:" + sig.Key()
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("taste:%x", hash[:16])
}

func cloneItems(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
