package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrClearAssignmentsCommandIsNotConstructed = errors.New(
	"ClearAssignmentsCommand must be created via NewClearAssignmentsCommand constructor",
)

// ClearAssignmentsCommand drops the published assignment.
type ClearAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewClearAssignmentsCommand creates a new command to clear the board.
func NewClearAssignmentsCommand() ClearAssignmentsCommand {
	return ClearAssignmentsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ClearAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrClearAssignmentsCommandIsNotConstructed)
}
