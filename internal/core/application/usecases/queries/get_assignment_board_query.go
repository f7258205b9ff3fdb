// Package queries contains read-only operations over the assignment board and
// the driver and order stores.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentBoardQueryIsNotConstructed = errors.New(
	"GetAssignmentBoardQuery must be created via NewGetAssignmentBoardQuery constructor",
)

// GetAssignmentBoardQuery reads the published assignment grouped by driver.
//
// Example:
//
//	view, err := handler.Handle(ctx, NewGetAssignmentBoardQuery())
//	for _, group := range view.Drivers {
//	    fmt.Printf("%s: %d orders\n", group.Driver.DisplayName(), group.Load)
//	}
type GetAssignmentBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAssignmentBoardQuery creates a board query.
func NewGetAssignmentBoardQuery() GetAssignmentBoardQuery {
	return GetAssignmentBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentBoardQueryIsNotConstructed)
}

// DriverAssignments is one driver with the orders assigned to it, in order
// input order. Load equals len(Orders). Tiers holds the matching tier of each
// of those orders, taken from the same run.
type DriverAssignments struct {
	Driver *driver.Driver
	Orders []*order.Order
	Load   int
	Tiers  map[kernel.UUID]assignment.Tier
}

// GetAssignmentBoardQueryResponse is the board view. Drivers lists every
// driver of the run in input order, including drivers without orders.
type GetAssignmentBoardQueryResponse struct {
	RunID       uint64
	CompletedAt time.Time
	Running     bool
	Drivers     []DriverAssignments
	Unassigned  []*order.Order
	Tiers       map[kernel.UUID]assignment.Tier
}
