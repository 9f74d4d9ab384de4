package commands

import (
	"errors"

	"fieldops/internal/pkg/guard"
)

var ErrReconcileAssignmentsCommandIsNotConstructed = errors.New(
	"ReconcileAssignmentsCommand must be created via NewReconcileAssignmentsCommand constructor",
)

// ReconcileAssignmentsCommand requests a sweep over all assigned jobs,
// repairing engineer availability records left inconsistent by a failed
// compensation. It runs on behalf of the system, not a session actor.
type ReconcileAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileAssignmentsCommand creates a reconciliation sweep command.
func NewReconcileAssignmentsCommand() ReconcileAssignmentsCommand {
	return ReconcileAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrReconcileAssignmentsCommandIsNotConstructed)
}
