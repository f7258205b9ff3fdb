package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrExportAssignmentsCommandIsNotConstructed = errors.New(
	"ExportAssignmentsCommand must be created via NewExportAssignmentsCommand constructor",
)

// ExportAssignmentsCommand delivers the published assignment as CSV to the
// configured export sink.
type ExportAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewExportAssignmentsCommand creates a new export command.
func NewExportAssignmentsCommand() ExportAssignmentsCommand {
	return ExportAssignmentsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ExportAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrExportAssignmentsCommandIsNotConstructed)
}
