package memory

import (
	"context"
	"encoding"
	"sync"
	"time"

	"halifax-hub/internal/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache is an in-process cache.Cache. Expired entries are dropped
// lazily on read and during periodic sweeps piggybacked on writes, so
// no background goroutine is needed.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]entry
	opts      cache.Options
	lastSweep time.Time
	closed    bool
}

func New(opts cache.Options) *Cache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = cache.DefaultOptions().DefaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = cache.DefaultOptions().CleanupInterval
	}
	return &Cache{
		entries:   make(map[string]entry),
		opts:      opts,
		lastSweep: time.Now(),
	}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	data, err := encode(value)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = c.opts.DefaultTTL
	}

	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	c.sweepLocked(now)
	c.entries[key] = entry{data: data, expiresAt: now.Add(ttl)}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	now := time.Now()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return cache.ErrClosed
	}
	e, ok := c.entries[key]
	if ok && now.After(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return cache.ErrNotFound
	}
	return decode(e.data, value)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	delete(c.entries, key)
	return nil
}

func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	c.entries = make(map[string]entry)
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.entries = nil
	return nil
}

func (c *Cache) sweepLocked(now time.Time) {
	if now.Sub(c.lastSweep) < c.opts.CleanupInterval {
		return
	}
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}

func encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return append([]byte(nil), v...), nil
	case encoding.BinaryMarshaler:
		return v.MarshalBinary()
	default:
		return nil, cache.ErrInvalidValue
	}
}

func decode(data []byte, value interface{}) error {
	switch v := value.(type) {
	case *string:
		*v = string(data)
		return nil
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(data)
	default:
		return cache.ErrInvalidValue
	}
}
