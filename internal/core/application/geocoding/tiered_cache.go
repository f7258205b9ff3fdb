package geocoding

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
)

// TieredCache layers several GeocodeCache implementations, fastest first.
//
// Get reads the tiers in order and copies a hit into every faster tier that
// missed it. Put and Reset apply to every tier; PutLocal only to the first. A failing tier does not stop
// the others; its error is joined into the returned error.
//
// Example:
//
//	cache := geocoding.NewTieredCache(memcache.New(), rediscache.New(client, ttl), geocodeRepo)
type TieredCache struct {
	tiers []ports.GeocodeCache
}

// NewTieredCache creates a TieredCache over the given tiers. Nil tiers are skipped.
func NewTieredCache(tiers ...ports.GeocodeCache) *TieredCache {
	kept := make([]ports.GeocodeCache, 0, len(tiers))
	for _, t := range tiers {
		if t != nil {
			kept = append(kept, t)
		}
	}
	return &TieredCache{tiers: kept}
}

// Get returns the entry of the first tier that has key.
// Errors of tiers that were read are joined; a later hit is still returned.
func (c *TieredCache) Get(ctx context.Context, key string) (ports.GeocodeEntry, bool, error) {
	var errs []error

	for i, tier := range c.tiers {
		entry, found, err := tier.Get(ctx, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !found {
			continue
		}

		for _, upper := range c.tiers[:i] {
			if err := upper.Put(ctx, key, entry); err != nil {
				errs = append(errs, err)
			}
		}
		return entry, true, errors.Join(errs...)
	}

	return ports.GeocodeEntry{}, false, errors.Join(errs...)
}

// Put writes the entry to every tier.
func (c *TieredCache) Put(ctx context.Context, key string, entry ports.GeocodeEntry) error {
	var errs []error
	for _, tier := range c.tiers {
		if err := tier.Put(ctx, key, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PutLocal writes the entry to the first tier only.
func (c *TieredCache) PutLocal(ctx context.Context, key string, entry ports.GeocodeEntry) error {
	if len(c.tiers) == 0 {
		return nil
	}
	return c.tiers[0].Put(ctx, key, entry)
}

// Reset clears every tier.
func (c *TieredCache) Reset(ctx context.Context) error {
	var errs []error
	for _, tier := range c.tiers {
		if err := tier.Reset(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetMany reads keys from every tier that implements ports.GeocodeBulkReader,
// asking each tier only for keys still missing, and promotes hits into the
// tiers above. Tiers without bulk reads are skipped.
func (c *TieredCache) GetMany(ctx context.Context, keys []string) (map[string]ports.GeocodeEntry, error) {
	found := make(map[string]ports.GeocodeEntry, len(keys))
	missing := keys
	var errs []error

	for i, tier := range c.tiers {
		if len(missing) == 0 {
			break
		}
		bulk, ok := tier.(ports.GeocodeBulkReader)
		if !ok {
			continue
		}

		hits, err := bulk.GetMany(ctx, missing)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		rest := missing[:0:0]
		for _, key := range missing {
			entry, hit := hits[key]
			if !hit {
				rest = append(rest, key)
				continue
			}
			found[key] = entry
			for _, upper := range c.tiers[:i] {
				if err := upper.Put(ctx, key, entry); err != nil {
					errs = append(errs, err)
				}
			}
		}
		missing = rest
	}

	return found, errors.Join(errs...)
}
