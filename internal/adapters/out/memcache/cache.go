// Package memcache provides the process-local geocode cache tier.
package memcache

import (
	"context"
	"sync"

	"dispatch/internal/core/ports"
)

// Cache is an in-memory ports.GeocodeCache that lives as long as the process.
// The zero value is not usable; call New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]ports.GeocodeEntry
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]ports.GeocodeEntry)}
}

func (c *Cache) Get(_ context.Context, key string) (ports.GeocodeEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return e, ok, nil
}

func (c *Cache) Put(_ context.Context, key string, entry ports.GeocodeEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	return nil
}

func (c *Cache) Reset(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]ports.GeocodeEntry)
	return nil
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
