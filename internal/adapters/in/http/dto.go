package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every error response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Driver struct {
	ID       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	Phone    string             `json:"phone,omitempty"`
	City     string             `json:"city,omitempty"`
	Address  string             `json:"address,omitempty"`
	Location *Coordinates       `json:"location,omitempty"`
}

type Order struct {
	ID             openapi_types.UUID `json:"id"`
	Number         string             `json:"number,omitempty"`
	Title          string             `json:"title"`
	Recipient      string             `json:"recipient,omitempty"`
	Address        string             `json:"address,omitempty"`
	City           string             `json:"city,omitempty"`
	State          string             `json:"state,omitempty"`
	AddressDisplay string             `json:"addressDisplay,omitempty"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"createdAt"`
	Tier           string             `json:"tier,omitempty"`
	Location       *Coordinates       `json:"location,omitempty"`
}

type DriverGroup struct {
	Driver Driver  `json:"driver"`
	Orders []Order `json:"orders"`
	Load   int     `json:"load"`
}

type Board struct {
	RunID       uint64        `json:"runId"`
	Running     bool          `json:"running"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Drivers     []DriverGroup `json:"drivers"`
	Unassigned  []Order       `json:"unassigned"`
}

func toCoordinates(c kernel.Coordinates, ok bool) *Coordinates {
	if !ok {
		return nil
	}
	return &Coordinates{Lat: c.Lat(), Lon: c.Lon()}
}

func toDriver(d *driver.Driver) Driver {
	contact := d.Contact()
	return Driver{
		ID:       d.ID().Bytes(),
		Name:     d.DisplayName(),
		Phone:    contact.Phone,
		City:     contact.City,
		Address:  contact.Address,
		Location: toCoordinates(d.Location()),
	}
}

func toOrder(o *order.Order, tiers map[kernel.UUID]assignment.Tier) Order {
	delivery := o.Delivery()
	out := Order{
		ID:             o.ID().Bytes(),
		Number:         o.Number(),
		Title:          o.Title(),
		Recipient:      delivery.Recipient,
		Address:        delivery.Address,
		City:           delivery.City,
		State:          delivery.State,
		AddressDisplay: o.AddressDisplay(),
		Status:         o.Status().String(),
		CreatedAt:      o.CreatedAt(),
		Location:       toCoordinates(o.Location()),
	}
	if tier, ok := tiers[o.ID()]; ok {
		out.Tier = tier.String()
	}
	return out
}

func toOrders(orders []*order.Order, tiers map[kernel.UUID]assignment.Tier) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o, tiers))
	}
	return out
}

func toDriverGroup(g queries.DriverAssignments) DriverGroup {
	return DriverGroup{
		Driver: toDriver(g.Driver),
		Orders: toOrders(g.Orders, g.Tiers),
		Load:   g.Load,
	}
}

func toBoard(view queries.GetAssignmentBoardQueryResponse) Board {
	b := Board{
		RunID:      view.RunID,
		Running:    view.Running,
		Drivers:    make([]DriverGroup, 0, len(view.Drivers)),
		Unassigned: toOrders(view.Unassigned, view.Tiers),
	}
	if !view.CompletedAt.IsZero() {
		completed := view.CompletedAt
		b.CompletedAt = &completed
	}
	for _, g := range view.Drivers {
		b.Drivers = append(b.Drivers, toDriverGroup(g))
	}
	return b
}
