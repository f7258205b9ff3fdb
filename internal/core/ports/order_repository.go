package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository reads the orders awaiting delivery.
type OrderRepository interface {
	// ListOpenOrders returns every order whose status is not completed,
	// newest first by creation time.
	ListOpenOrders(ctx context.Context) ([]*order.Order, error)
}
