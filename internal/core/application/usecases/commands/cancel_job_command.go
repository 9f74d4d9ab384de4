package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/guard"
)

var ErrCancelJobCommandIsNotConstructed = errors.New(
	"CancelJobCommand must be created via NewCancelJobCommand constructor",
)

// CancelJobCommand requests cancellation of a non-terminal job. If an
// engineer is assigned, cancellation releases them back to available.
type CancelJobCommand struct {
	jobID kernel.UUID
	actor ports.Actor

	guard guard.ConstructorGuard
}

// NewCancelJobCommand creates a validated cancellation command.
func NewCancelJobCommand(jobID kernel.UUID, actor ports.Actor) (CancelJobCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		actor.ID.Validate(),
		actor.AgencyID.Validate(),
	); err != nil {
		return CancelJobCommand{}, err
	}

	return CancelJobCommand{
		jobID: jobID,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// JobID returns the job to cancel.
func (c CancelJobCommand) JobID() kernel.UUID { return c.jobID }

// Actor returns who requested the cancellation.
func (c CancelJobCommand) Actor() ports.Actor { return c.actor }

// Validate ensures the command was created through the constructor.
func (c CancelJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelJobCommandIsNotConstructed)
}
