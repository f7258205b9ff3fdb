package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO maps the columns of the orders table read for assignment.
// Descriptive columns are nullable; the storefront fills them as it goes.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     *string
	CustomerName    *string
	CustomerPhone   *string
	DeliveryAddress *string
	DeliveryCity    *string
	DeliveryState   *string
	Status          *string   `gorm:"index"`
	CreatedAt       time.Time `gorm:"index"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// toDomain converts a row into an order.
// The recipient is the customer name, or the customer phone when the name is empty.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	recipient := deref(dto.CustomerName)
	if recipient == "" {
		recipient = deref(dto.CustomerPhone)
	}

	return order.NewOrder(id, deref(dto.OrderNumber), order.Delivery{
		Recipient: recipient,
		Address:   deref(dto.DeliveryAddress),
		City:      deref(dto.DeliveryCity),
		State:     deref(dto.DeliveryState),
	}, order.ParseStatus(deref(dto.Status)), dto.CreatedAt)
}
