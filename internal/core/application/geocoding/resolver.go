package geocoding

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
)

// CacheKey returns the cache key of an address: trimmed and lower-cased.
func CacheKey(address string) string {
	return kernel.Normalize(address)
}

// Resolver turns free-text addresses into coordinates through a Geocoder,
// memoising every outcome in a GeocodeCache.
//
// Resolution never fails: transport errors, non-success responses and empty
// results all yield "unresolved", which is cached so the address is not
// queried again. An empty result is cached in every tier. A failed lookup is
// cached only in the process-local tier when the cache supports
// ports.GeocodeLocalWriter, so shared and persistent tiers never keep a
// transient failure beyond the process.
//
// Example:
//
//	r := geocoding.NewResolver(nominatimClient, cache, logger)
//	if c, ok := r.Resolve(ctx, "12 MG Road, Pune"); ok {
//	    fmt.Println(c.Lat(), c.Lon())
//	}
type Resolver struct {
	geocoder ports.Geocoder
	cache    ports.GeocodeCache
	logger   *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(geocoder ports.Geocoder, cache ports.GeocodeCache, logger *slog.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		cache:    cache,
		logger:   logger.With("component", "geocode-resolver"),
	}
}

// Resolve returns the coordinates of address and whether it could be placed.
//
// Steps:
//   - blank address: unresolved, without lookup or cache write
//   - cached key: the cached outcome, without lookup
//   - otherwise one Geocoder.Search; the first candidate wins, anything else
//     is unresolved; the outcome is cached (failures locally only)
//
// Concurrent calls for the same uncached key may each call the geocoder.
// Cache errors are logged and treated as a miss. When ctx is cancelled during
// the lookup the outcome is returned as unresolved but not cached.
func (r *Resolver) Resolve(ctx context.Context, address string) (kernel.Coordinates, bool) {
	key := CacheKey(address)
	if key == "" {
		return kernel.Coordinates{}, false
	}

	entry, found, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "geocode cache read failed", "key", key, "error", err)
	}
	if found {
		metrics.GeocodeCacheRequests.WithLabelValues("hit").Inc()
		return entry.Coordinates, entry.Resolved
	}
	metrics.GeocodeCacheRequests.WithLabelValues("miss").Inc()

	entry, scope := r.lookup(ctx, address, key)
	if err := r.store(ctx, key, entry, scope); err != nil {
		r.logger.WarnContext(ctx, "geocode cache write failed", "key", key, "error", err)
	}

	return entry.Coordinates, entry.Resolved
}

// cacheScope says where a lookup outcome may be cached.
type cacheScope int

const (
	cacheNone cacheScope = iota
	cacheLocal
	cacheAll
)

func (r *Resolver) store(ctx context.Context, key string, entry ports.GeocodeEntry, scope cacheScope) error {
	switch scope {
	case cacheLocal:
		if local, ok := r.cache.(ports.GeocodeLocalWriter); ok {
			return local.PutLocal(ctx, key, entry)
		}
		return r.cache.Put(ctx, key, entry)
	case cacheAll:
		return r.cache.Put(ctx, key, entry)
	default:
		return nil
	}
}

func (r *Resolver) lookup(ctx context.Context, address, key string) (ports.GeocodeEntry, cacheScope) {
	started := time.Now()
	candidates, err := r.geocoder.Search(ctx, address)
	metrics.GeocodeLookupDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		metrics.GeocodeLookups.WithLabelValues("error").Inc()
		if ctx.Err() != nil {
			return ports.UnresolvedEntry(), cacheNone
		}
		r.logger.WarnContext(ctx, "geocode lookup failed", "key", key, "error", err)
		return ports.UnresolvedEntry(), cacheLocal
	}

	if len(candidates) == 0 || candidates[0].Validate() != nil {
		metrics.GeocodeLookups.WithLabelValues("empty").Inc()
		r.logger.DebugContext(ctx, "geocode lookup found nothing", "key", key)
		return ports.UnresolvedEntry(), cacheAll
	}

	metrics.GeocodeLookups.WithLabelValues("resolved").Inc()
	return ports.ResolvedEntry(candidates[0]), cacheAll
}

// Prefetch warms the cache for the given addresses with a single bulk read,
// when the cache supports it. Blank and duplicate addresses are skipped.
// Failures are logged; Resolve still works key by key afterwards.
func (r *Resolver) Prefetch(ctx context.Context, addresses []string) {
	bulk, ok := r.cache.(ports.GeocodeBulkReader)
	if !ok {
		return
	}

	seen := make(map[string]struct{}, len(addresses))
	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		key := CacheKey(a)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return
	}

	hits, err := bulk.GetMany(ctx, keys)
	if err != nil {
		r.logger.WarnContext(ctx, "geocode prefetch failed", "keys", len(keys), "error", err)
	}
	r.logger.DebugContext(ctx, "geocode prefetch done", "keys", len(keys), "hits", len(hits))
}

// Reset drops every cached outcome.
func (r *Resolver) Reset(ctx context.Context) error {
	return r.cache.Reset(ctx)
}
