package commands

import (
	"errors"
	"strings"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

var ErrCreateEngineerCommandIsNotConstructed = errors.New(
	"CreateEngineerCommand must be created via NewCreateEngineerCommand constructor",
)

// CreateEngineerCommand represents a request to register a new engineer in
// the actor's agency. New engineers start available.
type CreateEngineerCommand struct { //nolint:recvcheck //using for validation
	engineerID kernel.UUID
	name       string
	phone      string
	skill      kernel.SkillLevel
	actor      ports.Actor

	guard guard.ConstructorGuard
}

// NewCreateEngineerCommand creates a validated engineer creation command.
func NewCreateEngineerCommand(
	engineerID kernel.UUID,
	name string,
	phone string,
	skill kernel.SkillLevel,
	actor ports.Actor,
) (CreateEngineerCommand, error) {
	cmd := CreateEngineerCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEngineerID(engineerID),
		cmd.setName(name),
		cmd.setPhone(phone),
		cmd.setSkill(skill),
		actor.ID.Validate(),
		actor.AgencyID.Validate(),
	); err != nil {
		return CreateEngineerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateEngineerCommand) Validate() error {
	return c.guard.Validate(ErrCreateEngineerCommandIsNotConstructed)
}

// EngineerID returns the new engineer's identifier.
func (c CreateEngineerCommand) EngineerID() kernel.UUID { return c.engineerID }

// Name returns the engineer's display name.
func (c CreateEngineerCommand) Name() string { return c.name }

// Phone returns the engineer's contact number.
func (c CreateEngineerCommand) Phone() string { return c.phone }

// Skill returns the engineer's competence level.
func (c CreateEngineerCommand) Skill() kernel.SkillLevel { return c.skill }

// Actor returns who requested the creation.
func (c CreateEngineerCommand) Actor() ports.Actor { return c.actor }

func (c *CreateEngineerCommand) setEngineerID(engineerID kernel.UUID) error {
	if err := engineerID.Validate(); err != nil {
		return err
	}
	c.engineerID = engineerID
	return nil
}

func (c *CreateEngineerCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateEngineerCommand) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *CreateEngineerCommand) setSkill(skill kernel.SkillLevel) error {
	if err := skill.Validate(); err != nil {
		return err
	}
	c.skill = skill
	return nil
}
