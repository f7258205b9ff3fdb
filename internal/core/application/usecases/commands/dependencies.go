// Package commands contains the operations that change the state of the
// assignment service: running, clearing and exporting assignments, and
// invalidating the geocode cache.
// Every command follows the same pattern: a guard-validated command value and a
// handler holding its collaborators.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Geocoding is the address resolution used by assignment runs.
//
// Example:
//
//	var g Geocoding = geocoding.NewResolver(client, cache, logger)
//	g.Prefetch(ctx, addresses)
//	c, ok := g.Resolve(ctx, "12 MG Road, Pune")
type Geocoding interface {
	// Resolve returns the coordinates of address, if it can be placed.
	Resolve(ctx context.Context, address string) (kernel.Coordinates, bool)

	// Prefetch warms the cache for many addresses at once.
	Prefetch(ctx context.Context, addresses []string)

	// Reset drops every cached outcome.
	Reset(ctx context.Context) error
}
