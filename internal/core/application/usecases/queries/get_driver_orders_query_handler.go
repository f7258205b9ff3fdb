package queries

import (
	"context"

	"dispatch/internal/core/application/board"
	"dispatch/internal/pkg/errs"
)

// GetDriverOrdersQueryHandler answers GetDriverOrdersQuery from the board.
type GetDriverOrdersQueryHandler struct {
	board *board.Board
}

// NewGetDriverOrdersQueryHandler creates a handler reading b.
func NewGetDriverOrdersQueryHandler(b *board.Board) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{board: b}
}

// Handle returns the driver with its orders. A driver that is not part of the
// published run yields an *errs.ObjectNotFoundError.
func (h GetDriverOrdersQueryHandler) Handle(ctx context.Context, query GetDriverOrdersQuery) (DriverAssignments, error) {
	if err := query.Validate(); err != nil {
		return DriverAssignments{}, err
	}

	view, err := NewGetAssignmentBoardQueryHandler(h.board).Handle(ctx, NewGetAssignmentBoardQuery())
	if err != nil {
		return DriverAssignments{}, err
	}

	for _, group := range view.Drivers {
		if group.Driver.ID().IsEqual(query.DriverID()) {
			return group, nil
		}
	}
	return DriverAssignments{}, errs.NewObjectNotFoundError("driver", query.DriverID())
}
