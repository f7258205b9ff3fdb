package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/board"
)

// ErrRunInProgress is returned when the cache is invalidated while an
// assignment run is resolving addresses.
var ErrRunInProgress = board.ErrRunInProgress

// InvalidateGeocodeCacheCommandHandler resets the geocode cache between runs.
type InvalidateGeocodeCacheCommandHandler struct {
	board    *board.Board
	resolver Geocoding
	logger   *slog.Logger
}

// NewInvalidateGeocodeCacheCommandHandler creates a cache invalidation handler.
func NewInvalidateGeocodeCacheCommandHandler(
	b *board.Board,
	resolver Geocoding,
	logger *slog.Logger,
) InvalidateGeocodeCacheCommandHandler {
	return InvalidateGeocodeCacheCommandHandler{board: b, resolver: resolver, logger: logger}
}

// Handle resets the cache, or returns ErrRunInProgress while a run is in flight.
// No run can begin until the reset has finished.
func (h InvalidateGeocodeCacheCommandHandler) Handle(ctx context.Context, command InvalidateGeocodeCacheCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	err := h.board.WhileIdle(func() error {
		if err := h.resolver.Reset(ctx); err != nil {
			return fmt.Errorf("reset geocode cache: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "geocode cache invalidated")
	return nil
}
