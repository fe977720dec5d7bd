package coreapi

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrEntryExpired = errors.New("entry expired")
)

// Cache stores raw response bodies keyed by request path.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheEntry is a cached response.
type CacheEntry struct {
	Data               []byte    `json:"data"`
	RateLimitRemaining *int      `json:"rate_limit_remaining,omitempty"`
	ExpiresAt          time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry time.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// CacheOptions are applied by the client regardless of backend.
type CacheOptions struct {
	// TTL is how long a response stays cached.
	TTL time.Duration
}

// MemoryCache is a bounded in-process cache. When full, the entry closest to
// expiry is evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
	now     func() time.Time
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
// A non-positive maxSize means unbounded.
func NewMemoryCache(maxSize int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the entry stored under key.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrKeyNotFound
	}

	if entry.Expired(c.now()) {
		_ = c.Delete(ctx, key)

		return nil, ErrEntryExpired
	}

	return entry, nil
}

// Set stores entry under key.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}

	c.entries[key] = entry

	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*CacheEntry)
	c.mu.Unlock()

	return nil
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]

	return ok && !entry.Expired(c.now())
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Cleanup drops expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
		}
	}
}

// evictLocked drops expired entries, then the one expiring first if the
// cache is still full.
func (c *MemoryCache) evictLocked() {
	now := c.now()

	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) < c.maxSize {
		return
	}

	var (
		victim    string
		victimExp time.Time
	)

	for key, entry := range c.entries {
		if victim == "" || entry.ExpiresAt.Before(victimExp) {
			victim = key
			victimExp = entry.ExpiresAt
		}
	}

	delete(c.entries, victim)
}
