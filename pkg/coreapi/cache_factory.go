package coreapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VakeDomen/core-api-client/internal/constants"
)

// CacheType represents the type of cache backend.
type CacheType string

const (
	// CacheTypeMemory represents in-memory cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS represents NATS KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeNone represents no caching.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
	ErrCacheDisabled        = errors.New("cache disabled")
)

// CacheConfig configures the response cache.
type CacheConfig struct {
	// Type is the cache backend type
	Type CacheType

	// Memory cache configuration
	Memory *MemoryCacheConfig

	// NATS KV cache configuration
	NATS *NATSKVConfig

	// Common options applied to any backend. If nil, DefaultCacheOptions() is used.
	Options *CacheOptions
}

// MemoryCacheConfig configures memory cache.
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of items in the cache
	MaxSize int
}

// DefaultCacheOptions returns the options used when none are configured.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{TTL: constants.DefaultCacheTTL}
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type: CacheTypeMemory,
		Memory: &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
		},
		Options: DefaultCacheOptions(),
	}
}

// TTL returns the configured time-to-live or the default.
func (c *CacheConfig) TTL() time.Duration {
	if c == nil || c.Options == nil || c.Options.TTL <= 0 {
		return constants.DefaultCacheTTL
	}

	return c.Options.TTL
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory, "":
		return NewMemoryCacheFromConfig(config.Memory), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		cache, err := NewNATSKVCache(config.NATS)
		if err != nil {
			return nil, err
		}

		return cache, nil

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NewMemoryCacheFromConfig creates a memory cache from configuration.
func NewMemoryCacheFromConfig(config *MemoryCacheConfig) *MemoryCache {
	if config == nil || config.MaxSize <= 0 {
		return NewMemoryCache(constants.DefaultCacheSize)
	}

	return NewMemoryCache(config.MaxSize)
}

// NoOpCache is a cache that does nothing (no caching).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns an error (nothing cached).
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set does nothing.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}
