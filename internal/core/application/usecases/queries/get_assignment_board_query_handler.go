package queries

import (
	"context"

	"dispatch/internal/core/application/board"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// GetAssignmentBoardQueryHandler builds the board view from the published snapshot.
type GetAssignmentBoardQueryHandler struct {
	board *board.Board
}

// NewGetAssignmentBoardQueryHandler creates a handler reading b.
func NewGetAssignmentBoardQueryHandler(b *board.Board) GetAssignmentBoardQueryHandler {
	return GetAssignmentBoardQueryHandler{board: b}
}

// Handle returns the grouped board. An empty board yields a response without
// drivers or orders.
func (h GetAssignmentBoardQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentBoardQuery,
) (GetAssignmentBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAssignmentBoardQueryResponse{}, err
	}

	snap := h.board.Snapshot()
	resp := GetAssignmentBoardQueryResponse{
		RunID:       uint64(snap.RunID),
		CompletedAt: snap.CompletedAt,
		Running:     h.board.Running(),
		Drivers:     make([]DriverAssignments, 0, len(snap.Drivers)),
		Unassigned:  make([]*order.Order, 0),
		Tiers:       snap.Result.Tiers,
	}

	index := make(map[kernel.UUID]int, len(snap.Drivers))
	for i, d := range snap.Drivers {
		index[d.ID()] = i
		resp.Drivers = append(resp.Drivers, DriverAssignments{
			Driver: d,
			Orders: make([]*order.Order, 0),
			Tiers:  make(map[kernel.UUID]assignment.Tier),
		})
	}

	for _, o := range snap.Orders {
		driverID, ok := snap.Result.Assignment.DriverFor(o.ID())
		i, known := index[driverID]
		if !ok || !known {
			resp.Unassigned = append(resp.Unassigned, o)
			continue
		}
		resp.Drivers[i].Orders = append(resp.Drivers[i].Orders, o)
		resp.Drivers[i].Load++
		if tier, ok := snap.Result.Tiers[o.ID()]; ok {
			resp.Drivers[i].Tiers[o.ID()] = tier
		}
	}

	return resp, nil
}
