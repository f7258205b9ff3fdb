package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Geocoder is the boundary to an external free-text address search.
type Geocoder interface {
	// Search returns zero or more candidate positions for the query, best first.
	// Transport failures and non-success responses are returned as errors.
	Search(ctx context.Context, query string) ([]kernel.Coordinates, error)
}

// GeocodeEntry is a cached lookup outcome. Resolved is false for addresses the
// geocoder could not place; such entries are cached like successful ones so
// the address is not queried again.
type GeocodeEntry struct {
	Coordinates kernel.Coordinates
	Resolved    bool
}

// UnresolvedEntry is the cached sentinel for addresses without coordinates.
func UnresolvedEntry() GeocodeEntry {
	return GeocodeEntry{}
}

// ResolvedEntry caches a successful lookup.
func ResolvedEntry(c kernel.Coordinates) GeocodeEntry {
	return GeocodeEntry{Coordinates: c, Resolved: true}
}

// GeocodeCache memoises geocoder outcomes by normalised address.
// Implementations must be safe for concurrent use; concurrent writes to the
// same key may be applied in any order.
type GeocodeCache interface {
	// Get returns the entry for key and whether one exists.
	Get(ctx context.Context, key string) (GeocodeEntry, bool, error)

	// Put stores the entry for key, replacing any previous one.
	Put(ctx context.Context, key string, entry GeocodeEntry) error

	// Reset removes every entry.
	Reset(ctx context.Context) error
}

// GeocodeBulkReader is implemented by caches that can read many keys in one
// round trip. Keys without an entry are absent from the returned map.
type GeocodeBulkReader interface {
	GetMany(ctx context.Context, keys []string) (map[string]GeocodeEntry, error)
}

// GeocodeLocalWriter is implemented by layered caches that can store an entry
// in their process-local tier only, leaving shared and persistent tiers alone.
type GeocodeLocalWriter interface {
	PutLocal(ctx context.Context, key string, entry GeocodeEntry) error
}
