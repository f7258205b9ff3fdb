package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/board"
)

// ClearAssignmentsCommandHandler empties the board. Runs still in flight are
// superseded and will not publish.
type ClearAssignmentsCommandHandler struct {
	board  *board.Board
	logger *slog.Logger
}

// NewClearAssignmentsCommandHandler creates a handler that clears b.
func NewClearAssignmentsCommandHandler(b *board.Board, logger *slog.Logger) ClearAssignmentsCommandHandler {
	return ClearAssignmentsCommandHandler{board: b, logger: logger}
}

// Handle clears the board.
func (h ClearAssignmentsCommandHandler) Handle(ctx context.Context, command ClearAssignmentsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	h.board.Clear()
	h.logger.InfoContext(ctx, "assignments cleared")
	return nil
}
