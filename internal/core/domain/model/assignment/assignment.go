package assignment

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderAlreadyAssigned is returned by Builder.Assign for an order that
// already has a driver in the assignment being built.
var ErrOrderAlreadyAssigned = errors.New("order is already assigned")

// Assignment maps order IDs to driver IDs. Each order has at most one driver;
// a driver may have any number of orders.
//
// An Assignment is immutable. A new run produces a new Assignment that
// replaces the previous one as a whole; entries are never patched.
//
// The zero value is an empty assignment.
type Assignment struct {
	pairs map[kernel.UUID]kernel.UUID
}

// Empty returns an assignment without entries.
func Empty() Assignment {
	return Assignment{}
}

// DriverFor returns the driver assigned to the order, if any.
func (a Assignment) DriverFor(orderID kernel.UUID) (kernel.UUID, bool) {
	d, ok := a.pairs[orderID]
	return d, ok
}

// IsAssigned reports whether the order has a driver.
func (a Assignment) IsAssigned(orderID kernel.UUID) bool {
	_, ok := a.pairs[orderID]
	return ok
}

// Len returns the number of assigned orders.
func (a Assignment) Len() int {
	return len(a.pairs)
}

// IsEmpty reports whether no order is assigned.
func (a Assignment) IsEmpty() bool {
	return len(a.pairs) == 0
}

// Pairs returns a copy of the order → driver map.
func (a Assignment) Pairs() map[kernel.UUID]kernel.UUID {
	out := make(map[kernel.UUID]kernel.UUID, len(a.pairs))
	for o, d := range a.pairs {
		out[o] = d
	}
	return out
}

// Builder accumulates order → driver pairs for a single run.
// A Builder is not safe for concurrent use.
//
// Example:
//
//	b := assignment.NewBuilder()
//	if err := b.Assign(orderID, driverID); err != nil {
//	    return err
//	}
//	result := b.Build()
type Builder struct {
	pairs map[kernel.UUID]kernel.UUID
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{pairs: make(map[kernel.UUID]kernel.UUID)}
}

// Assign records that the order goes to the driver.
//
// Returns:
//   - ErrOrderAlreadyAssigned if the order already has a driver
//   - errs.ErrValueIsRequired if either ID is a zero value
func (b *Builder) Assign(orderID, driverID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order and driver id", err)
	}

	if existing, ok := b.pairs[orderID]; ok {
		return fmt.Errorf("%w: order %s has driver %s", ErrOrderAlreadyAssigned, orderID, existing)
	}

	b.pairs[orderID] = driverID
	return nil
}

// Build returns the accumulated Assignment. The Builder may keep being used;
// later calls to Assign do not affect assignments already built.
func (b *Builder) Build() Assignment {
	pairs := make(map[kernel.UUID]kernel.UUID, len(b.pairs))
	for o, d := range b.pairs {
		pairs[o] = d
	}
	return Assignment{pairs: pairs}
}
