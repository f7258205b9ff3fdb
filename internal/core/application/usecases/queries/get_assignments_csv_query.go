package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/application/board"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignmentsCSVQueryIsNotConstructed = errors.New(
	"GetAssignmentsCSVQuery must be created via NewGetAssignmentsCSVQuery constructor",
)

// GetAssignmentsCSVQuery renders the published assignment as CSV text.
type GetAssignmentsCSVQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAssignmentsCSVQuery creates a CSV query.
func NewGetAssignmentsCSVQuery() GetAssignmentsCSVQuery {
	return GetAssignmentsCSVQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentsCSVQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentsCSVQueryIsNotConstructed)
}

// GetAssignmentsCSVQueryHandler renders the board with AssignmentExporter.
// An empty board renders the header line only.
type GetAssignmentsCSVQueryHandler struct {
	board    *board.Board
	exporter services.AssignmentExporter
}

// NewGetAssignmentsCSVQueryHandler creates a handler reading b.
func NewGetAssignmentsCSVQueryHandler(b *board.Board) GetAssignmentsCSVQueryHandler {
	return GetAssignmentsCSVQueryHandler{board: b, exporter: services.NewAssignmentExporter()}
}

// Handle returns the CSV text.
func (h GetAssignmentsCSVQueryHandler) Handle(_ context.Context, query GetAssignmentsCSVQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}

	snap := h.board.Snapshot()
	return h.exporter.Export(snap.Result.Assignment, snap.Orders, snap.Drivers), nil
}
