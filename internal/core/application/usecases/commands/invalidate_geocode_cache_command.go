package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrInvalidateGeocodeCacheCommandIsNotConstructed = errors.New(
	"InvalidateGeocodeCacheCommand must be created via NewInvalidateGeocodeCacheCommand constructor",
)

// InvalidateGeocodeCacheCommand drops every cached geocode outcome, so the
// next run queries the geocoder again.
type InvalidateGeocodeCacheCommand struct {
	guard guard.ConstructorGuard
}

// NewInvalidateGeocodeCacheCommand creates a new cache invalidation command.
func NewInvalidateGeocodeCacheCommand() InvalidateGeocodeCacheCommand {
	return InvalidateGeocodeCacheCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c InvalidateGeocodeCacheCommand) Validate() error {
	return c.guard.Validate(ErrInvalidateGeocodeCacheCommandIsNotConstructed)
}
