package queries

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrListOpenOrdersQueryIsNotConstructed = errors.New(
	"ListOpenOrdersQuery must be created via NewListOpenOrdersQuery constructor",
)

// ListOpenOrdersQuery reads every order that is not completed, newest first.
type ListOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListOpenOrdersQuery creates an open order listing query.
func NewListOpenOrdersQuery() ListOpenOrdersQuery {
	return ListOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOpenOrdersQueryIsNotConstructed)
}

// ListOpenOrdersQueryHandler reads orders through ports.OrderRepository.
type ListOpenOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOpenOrdersQueryHandler creates a handler over repo.
func NewListOpenOrdersQueryHandler(repo ports.OrderRepository) ListOpenOrdersQueryHandler {
	return ListOpenOrdersQueryHandler{repo: repo}
}

// Handle returns the open orders.
func (h ListOpenOrdersQueryHandler) Handle(ctx context.Context, query ListOpenOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.repo.ListOpenOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open orders: %w", err)
	}
	return orders, nil
}
