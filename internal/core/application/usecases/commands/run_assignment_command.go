package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrRunAssignmentCommandIsNotConstructed = errors.New(
	"RunAssignmentCommand must be created via NewRunAssignmentCommand constructor",
)

// RunAssignmentCommand triggers a full assignment run: load drivers and open
// orders, resolve their addresses and distribute the orders among the drivers.
//
// Example:
//
//	cmd := NewRunAssignmentCommand()
//	snapshot, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, board.ErrRunSuperseded) {
//	    // a newer run owns the board
//	}
type RunAssignmentCommand struct {
	guard guard.ConstructorGuard
}

// NewRunAssignmentCommand creates a new command to trigger an assignment run.
func NewRunAssignmentCommand() RunAssignmentCommand {
	return RunAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRunAssignmentCommandIsNotConstructed if validation fails.
func (c RunAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRunAssignmentCommandIsNotConstructed)
}
