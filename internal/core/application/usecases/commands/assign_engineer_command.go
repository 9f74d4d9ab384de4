package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/guard"
)

var ErrAssignEngineerCommandIsNotConstructed = errors.New(
	"AssignEngineerCommand must be created via NewAssignEngineerCommand constructor",
)

// AssignEngineerCommand requests the assignment of a specific engineer to a
// specific pending job on behalf of an actor. This is the entry point of the
// dispatch core's pending -> assigned transition.
//
// Example:
//
//	cmd, err := NewAssignEngineerCommand(jobID, engineerID, actor)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type AssignEngineerCommand struct {
	jobID      kernel.UUID
	engineerID kernel.UUID
	actor      ports.Actor

	guard guard.ConstructorGuard
}

// NewAssignEngineerCommand creates a validated assignment command. Both ids
// and the actor's identity and agency must be valid UUIDs.
func NewAssignEngineerCommand(
	jobID, engineerID kernel.UUID,
	actor ports.Actor,
) (AssignEngineerCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		engineerID.Validate(),
		actor.ID.Validate(),
		actor.AgencyID.Validate(),
	); err != nil {
		return AssignEngineerCommand{}, err
	}

	return AssignEngineerCommand{
		jobID:      jobID,
		engineerID: engineerID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// JobID returns the target job's identifier.
func (c AssignEngineerCommand) JobID() kernel.UUID {
	return c.jobID
}

// EngineerID returns the engineer to assign.
func (c AssignEngineerCommand) EngineerID() kernel.UUID {
	return c.engineerID
}

// Actor returns who requested the assignment.
func (c AssignEngineerCommand) Actor() ports.Actor {
	return c.actor
}

// Validate ensures the command was created through the constructor.
func (c AssignEngineerCommand) Validate() error {
	return c.guard.Validate(ErrAssignEngineerCommandIsNotConstructed)
}
