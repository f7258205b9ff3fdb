// Package orderrepo reads open orders from PostgreSQL using GORM.
package orderrepo

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Migrate creates or updates the orders table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderDTO{})
}

// ListOpenOrders returns every order not in the completed status, newest first.
// Rows without a status count as open.
func (r *GormOrderRepository) ListOpenOrders(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("LOWER(COALESCE(status, '')) <> ?", string(order.Completed)).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, fmt.Errorf("list open orders: %w", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", dto.ID, err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}
