// Package kernel provides the domain primitives shared by drivers, orders and
// the assignment engine.
//
// The package includes:
//   - UUID: comparable identifier value object for drivers and orders
//   - Coordinates: validated WGS84 position with great-circle distance (HaversineKm)
//   - EditDistance, Similarity and Normalize: the text metrics behind fuzzy matching
//
// Everything here is pure and safe for concurrent use.
package kernel
