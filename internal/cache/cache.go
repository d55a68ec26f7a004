// Package cache holds previously resolved country codes for a bounded
// amount of time so repeated lookups do not hit external providers.
package cache

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultTTL is how long a resolved country code stays valid.
const DefaultTTL = 24 * time.Hour

type entry struct {
	countryCode string
	insertedAt  time.Time
}

// Cache is a TTL-bounded mapping from address to country code.
// Entries expire lazily: a stale entry is deleted on the next read of
// its key, there is no background sweep. Safe for concurrent use.
type Cache struct {
	ttl time.Duration
	clk clock.Clock

	mu      sync.Mutex
	entries map[string]entry
}

// New creates an empty cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, clock.New())
}

// NewWithClock is like New but with an injected clock, so tests can
// control entry ages.
func NewWithClock(ttl time.Duration, clk clock.Clock) *Cache {
	return &Cache{
		ttl:     ttl,
		clk:     clk,
		entries: make(map[string]entry),
	}
}

// Get returns the cached country code for addr. An entry older than
// the TTL is deleted as a side effect of the read and reported as
// absent.
func (c *Cache) Get(addr string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[addr]
	if !ok {
		return "", false
	}
	if c.clk.Since(e.insertedAt) >= c.ttl {
		delete(c.entries, addr)
		return "", false
	}
	return e.countryCode, true
}

// Put stores the country code for addr, unconditionally overwriting
// any existing entry with a fresh timestamp.
func (c *Cache) Put(addr, countryCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[addr] = entry{countryCode: countryCode, insertedAt: c.clk.Now()}
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// EntryStat describes one cache entry in a Stats snapshot.
type EntryStat struct {
	Address     string `json:"address"`
	CountryCode string `json:"country_code"`
	AgeMillis   int64  `json:"age_millis"`
}

// Stats is a read-only snapshot of the cache contents.
type Stats struct {
	Size    int         `json:"size"`
	Entries []EntryStat `json:"entries"`
}

// Stats reports the cache size and per-entry ages for diagnostics.
// It never mutates state: stale entries still appear here until the
// next Get of their key expires them.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clk.Now()
	stats := Stats{
		Size:    len(c.entries),
		Entries: make([]EntryStat, 0, len(c.entries)),
	}
	for addr, e := range c.entries {
		stats.Entries = append(stats.Entries, EntryStat{
			Address:     addr,
			CountryCode: e.countryCode,
			AgeMillis:   now.Sub(e.insertedAt).Milliseconds(),
		})
	}
	return stats
}
