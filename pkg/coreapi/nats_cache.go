package coreapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/VakeDomen/core-api-client/internal/constants"
	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream key-value cache.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. "nats://127.0.0.1:4222". Ignored when Conn is set.
	URL string
	// Conn is an existing connection to reuse. The cache does not close it.
	Conn *nats.Conn
	// Bucket name; created if missing. Defaults to constants.DefaultNATSBucket.
	Bucket string
	// TTL applied to the bucket when it is created.
	TTL time.Duration
	// Replicas for a newly created bucket.
	Replicas int
	// Timeout for connecting.
	Timeout time.Duration
}

// NATSKVCache stores entries in a JetStream key-value bucket so several
// processes can share cached responses.
type NATSKVCache struct {
	conn    *nats.Conn
	kv      nats.KeyValue
	ownConn bool
}

// NewNATSKVCache connects to NATS and binds to (or creates) the bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	conn := config.Conn
	ownConn := false

	if conn == nil {
		if config.URL == "" {
			return nil, ErrNATSURLRequired
		}

		timeout := config.Timeout
		if timeout <= 0 {
			timeout = constants.ShortHTTPTimeout
		}

		var err error

		conn, err = nats.Connect(config.URL, nats.Name("core-api-client"), nats.Timeout(timeout))
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		ownConn = true
	}

	kv, err := bindBucket(conn, config)
	if err != nil {
		if ownConn {
			conn.Close()
		}

		return nil, err
	}

	return &NATSKVCache{conn: conn, kv: kv, ownConn: ownConn}, nil
}

func bindBucket(conn *nats.Conn, config *NATSKVConfig) (nats.KeyValue, error) {
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	kv, err := js.KeyValue(bucket)
	if err == nil {
		return kv, nil
	}

	if !errors.Is(err, nats.ErrBucketNotFound) {
		return nil, fmt.Errorf("binding bucket %s: %w", bucket, err)
	}

	kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
		Bucket:      bucket,
		Description: "CORE API response cache",
		TTL:         config.TTL,
		Replicas:    config.Replicas,
	})
	if err != nil {
		return nil, fmt.Errorf("creating bucket %s: %w", bucket, err)
	}

	return kv, nil
}

// natsKey maps an arbitrary request path onto the restricted KV key alphabet.
func natsKey(key string) string {
	sum := sha256.Sum256([]byte(key))

	return hex.EncodeToString(sum[:])
}

// Get returns the entry stored under key.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	item, err := c.kv.Get(natsKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}

		return nil, fmt.Errorf("getting cache entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(item.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired(time.Now()) {
		_ = c.Delete(ctx, key)

		return nil, ErrEntryExpired
	}

	return &entry, nil
}

// Set stores entry under key.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.kv.Put(natsKey(key), data)
	if err != nil {
		return fmt.Errorf("putting cache entry: %w", err)
	}

	return nil
}

// Delete removes key.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(natsKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear purges every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys(nats.Context(ctx))
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("purging cache entry: %w", err)
		}
	}

	return nil
}

// Has reports whether a live entry exists for key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the connection if the cache opened it.
func (c *NATSKVCache) Close() {
	if c.ownConn {
		c.conn.Close()
	}
}
