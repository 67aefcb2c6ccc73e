package dictionary

import (
	"strings"
	"sync"
	"time"

	"github.com/at-ishikawa/deftip/internal/clock"
)

const (
	DefaultExpiry        = 24 * time.Hour
	DefaultSweepInterval = time.Hour
)

// CacheEntry is a cached definition with the time it was stored.
type CacheEntry struct {
	Definition string
	Timestamp  time.Time
}

// Cache maps normalized words to definitions for a fixed expiry.
// Entries are never returned once their age reaches the expiry; Sweep only bounds memory.
type Cache struct {
	mu      sync.Mutex
	entries map[string]CacheEntry
	expiry  time.Duration
	clock   clock.Clock
}

type CacheOption func(*Cache)

func WithExpiry(expiry time.Duration) CacheOption {
	return func(c *Cache) {
		c.expiry = expiry
	}
}

func WithClock(clk clock.Clock) CacheOption {
	return func(c *Cache) {
		c.clock = clk
	}
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]CacheEntry),
		expiry:  DefaultExpiry,
		clock:   clock.System,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize turns a word into its cache key.
func Normalize(word string) string {
	return strings.TrimSpace(strings.ToLower(word))
}

func (c *Cache) isValid(entry CacheEntry, now time.Time) bool {
	return now.Sub(entry.Timestamp) < c.expiry
}

// Get returns the entry for word if it has not expired. An expired entry is removed.
func (c *Cache) Get(word string) (CacheEntry, bool) {
	key := Normalize(word)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return CacheEntry{}, false
	}
	if !c.isValid(entry, c.clock.Now()) {
		delete(c.entries, key)
		return CacheEntry{}, false
	}
	return entry, true
}

// Put stores definition for word, replacing any existing entry.
func (c *Cache) Put(word, definition string) {
	key := Normalize(word)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = CacheEntry{
		Definition: definition,
		Timestamp:  c.clock.Now(),
	}
}

// Sweep removes every expired entry and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for key, entry := range c.entries {
		if !c.isValid(entry, now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
