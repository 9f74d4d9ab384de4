package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

// CompleteJobCommand marks an onsite job as finished, releases the
// engineer and updates their completion counters.
type CompleteJobCommand struct {
	jobID      kernel.UUID
	successful bool
	actor      ports.Actor

	guard guard.ConstructorGuard
}

// NewCompleteJobCommand creates a validated completion command.
func NewCompleteJobCommand(jobID kernel.UUID, successful bool, actor ports.Actor) (CompleteJobCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		actor.ID.Validate(),
		actor.AgencyID.Validate(),
	); err != nil {
		return CompleteJobCommand{}, err
	}

	return CompleteJobCommand{
		jobID:      jobID,
		successful: successful,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// JobID returns the job to complete.
func (c CompleteJobCommand) JobID() kernel.UUID { return c.jobID }

// Successful reports whether the visit resolved the client's problem.
func (c CompleteJobCommand) Successful() bool { return c.successful }

// Actor returns who reported the completion.
func (c CompleteJobCommand) Actor() ports.Actor { return c.actor }

// Validate ensures the command was created through the constructor.
func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}
