// Package geocoding resolves driver and order addresses into coordinates.
//
// The package includes:
//   - Resolver: memoising single-address resolution over ports.Geocoder
//   - BatchResolve: bounded worker pool with a per-worker throttle pause
//   - TieredCache: read-through, write-through composition of cache tiers
package geocoding
