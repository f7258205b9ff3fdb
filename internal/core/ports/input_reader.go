package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// InputReader loads the inputs of one assignment run.
// Drivers and orders come from the same consistent view of storage, so an
// order cannot reference a state newer than the driver list it is matched against.
type InputReader interface {
	// ReadInputs returns the drivers and the open orders, with the same
	// semantics as DriverRepository.ListDrivers and OrderRepository.ListOpenOrders.
	ReadInputs(ctx context.Context) ([]*driver.Driver, []*order.Order, error)
}
