package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/board"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ErrNothingToExport is returned when the board holds no orders.
var ErrNothingToExport = errors.New("no orders to export")

// ExportAssignmentsCommandHandler renders the board with AssignmentExporter and
// hands the text to an ExportSink. A sink failure leaves the board untouched.
//
// Example:
//
//	handler := NewExportAssignmentsCommandHandler(b, sink.NewFileSink("assignments.csv"), logger)
//	if err := handler.Handle(ctx, NewExportAssignmentsCommand()); err != nil {
//	    return err
//	}
type ExportAssignmentsCommandHandler struct {
	board    *board.Board
	exporter services.AssignmentExporter
	sink     ports.ExportSink
	logger   *slog.Logger
}

// NewExportAssignmentsCommandHandler creates a handler delivering to sink.
func NewExportAssignmentsCommandHandler(b *board.Board, sink ports.ExportSink, logger *slog.Logger) ExportAssignmentsCommandHandler {
	return ExportAssignmentsCommandHandler{
		board:    b,
		exporter: services.NewAssignmentExporter(),
		sink:     sink,
		logger:   logger,
	}
}

// Handle exports the published assignment. It returns ErrNothingToExport when
// the board has no orders.
func (h ExportAssignmentsCommandHandler) Handle(ctx context.Context, command ExportAssignmentsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	snap := h.board.Snapshot()
	if len(snap.Orders) == 0 {
		return ErrNothingToExport
	}

	text := h.exporter.Export(snap.Result.Assignment, snap.Orders, snap.Drivers)
	if err := h.sink.Deliver(ctx, text); err != nil {
		return fmt.Errorf("deliver export: %w", err)
	}

	h.logger.InfoContext(ctx, "assignments exported", "run", uint64(snap.RunID), "orders", len(snap.Orders))
	return nil
}
