// Package ports defines the capability interfaces of the assignment core.
// Adapters implement them; use cases depend only on these contracts, which
// keeps the engine testable with deterministic fakes.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
)

// DriverRepository reads the drivers taking part in assignment.
type DriverRepository interface {
	// ListDrivers returns every driver. Implementations prefer the dedicated
	// driver collection and fall back to user profiles when that collection
	// is empty and could be read without error.
	//
	// Example:
	//   drivers, err := repo.ListDrivers(ctx)
	//   if err != nil {
	//       return fmt.Errorf("list drivers: %w", err)
	//   }
	ListDrivers(ctx context.Context) ([]*driver.Driver, error)
}
