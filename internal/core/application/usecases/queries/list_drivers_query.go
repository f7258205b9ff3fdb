package queries

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrListDriversQueryIsNotConstructed = errors.New(
	"ListDriversQuery must be created via NewListDriversQuery constructor",
)

// ListDriversQuery reads every driver from storage, without coordinates.
type ListDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewListDriversQuery creates a driver listing query.
func NewListDriversQuery() ListDriversQuery {
	return ListDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListDriversQuery) Validate() error {
	return q.guard.Validate(ErrListDriversQueryIsNotConstructed)
}

// ListDriversQueryHandler reads drivers through ports.DriverRepository.
type ListDriversQueryHandler struct {
	repo ports.DriverRepository
}

// NewListDriversQueryHandler creates a handler over repo.
func NewListDriversQueryHandler(repo ports.DriverRepository) ListDriversQueryHandler {
	return ListDriversQueryHandler{repo: repo}
}

// Handle returns the drivers.
func (h ListDriversQueryHandler) Handle(ctx context.Context, query ListDriversQuery) ([]*driver.Driver, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers, err := h.repo.ListDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}
