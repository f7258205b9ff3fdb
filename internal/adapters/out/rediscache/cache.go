// Package rediscache provides the shared geocode cache tier on Redis.
//
// Entries are JSON documents under "geocode:<normalised address>". Several
// service instances pointing at the same Redis share their lookups.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	redis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written by Cache.
const KeyPrefix = "geocode:"

const scanBatch = 256

type entryDTO struct {
	Resolved bool    `json:"resolved"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
}

// Cache is a ports.GeocodeCache backed by Redis.
type Cache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// New returns a Cache using rdb. A ttl of zero keeps entries until Reset.
func New(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// NewFromURL connects to the Redis server at url, e.g. "redis://localhost:6379/0".
func NewFromURL(url string, ttl time.Duration) (*Cache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return New(redis.NewClient(opt), ttl), nil
}

func (c *Cache) Get(ctx context.Context, key string) (ports.GeocodeEntry, bool, error) {
	raw, err := c.rdb.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.GeocodeEntry{}, false, nil
	}
	if err != nil {
		return ports.GeocodeEntry{}, false, fmt.Errorf("redis get %q: %w", key, err)
	}

	var dto entryDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return ports.GeocodeEntry{}, false, fmt.Errorf("decode cached entry %q: %w", key, err)
	}
	if !dto.Resolved {
		return ports.UnresolvedEntry(), true, nil
	}

	coords, err := kernel.NewCoordinates(dto.Lat, dto.Lon)
	if err != nil {
		return ports.GeocodeEntry{}, false, fmt.Errorf("cached entry %q: %w", key, err)
	}
	return ports.ResolvedEntry(coords), true, nil
}

func (c *Cache) Put(ctx context.Context, key string, entry ports.GeocodeEntry) error {
	dto := entryDTO{Resolved: entry.Resolved}
	if entry.Resolved {
		dto.Lat = entry.Coordinates.Lat()
		dto.Lon = entry.Coordinates.Lon()
	}

	raw, err := json.Marshal(dto)
	if err != nil {
		return err
	}

	if err := c.rdb.Set(ctx, KeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Reset deletes every key under KeyPrefix. Other keys of the database are kept.
func (c *Cache) Reset(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, KeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the client.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
