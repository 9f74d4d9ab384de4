package commands

import (
	"errors"
	"strings"
	"time"

	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand represents a request to register a new field-service job.
// The job is owned by the actor's agency and starts in pending status.
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID         kernel.UUID
	number        string
	clientName    string
	site          kernel.GeoPoint
	siteAddress   string
	requiredSkill kernel.SkillLevel
	urgency       job.Urgency
	scheduledAt   *time.Time
	actor         ports.Actor

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a validated job creation command.
func NewCreateJobCommand(
	jobID kernel.UUID,
	number string,
	clientName string,
	site kernel.GeoPoint,
	siteAddress string,
	requiredSkill kernel.SkillLevel,
	urgency job.Urgency,
	scheduledAt *time.Time,
	actor ports.Actor,
) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		scheduledAt: scheduledAt,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setNumber(number),
		cmd.setClientName(clientName),
		cmd.setSite(site, siteAddress),
		cmd.setRequiredSkill(requiredSkill),
		cmd.setUrgency(urgency),
		actor.ID.Validate(),
		actor.AgencyID.Validate(),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// JobID returns the new job's identifier.
func (c CreateJobCommand) JobID() kernel.UUID { return c.jobID }

// Number returns the human-readable job number.
func (c CreateJobCommand) Number() string { return c.number }

// ClientName returns the client the work is performed for.
func (c CreateJobCommand) ClientName() string { return c.clientName }

// Site returns the job site location.
func (c CreateJobCommand) Site() kernel.GeoPoint { return c.site }

// SiteAddress returns the human-readable site address.
func (c CreateJobCommand) SiteAddress() string { return c.siteAddress }

// RequiredSkill returns the minimum engineer skill level.
func (c CreateJobCommand) RequiredSkill() kernel.SkillLevel { return c.requiredSkill }

// Urgency returns the urgency class.
func (c CreateJobCommand) Urgency() job.Urgency { return c.urgency }

// ScheduledAt returns the planned start time, or nil.
func (c CreateJobCommand) ScheduledAt() *time.Time { return c.scheduledAt }

// Actor returns who requested the creation.
func (c CreateJobCommand) Actor() ports.Actor { return c.actor }

func (c *CreateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}
	c.jobID = jobID
	return nil
}

func (c *CreateJobCommand) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("job number")
	}
	c.number = number
	return nil
}

func (c *CreateJobCommand) setClientName(clientName string) error {
	if strings.TrimSpace(clientName) == "" {
		return errs.NewValueIsRequiredError("client name")
	}
	c.clientName = clientName
	return nil
}

func (c *CreateJobCommand) setSite(site kernel.GeoPoint, address string) error {
	if err := site.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("site address")
	}
	c.site = site
	c.siteAddress = address
	return nil
}

func (c *CreateJobCommand) setRequiredSkill(skill kernel.SkillLevel) error {
	if err := skill.Validate(); err != nil {
		return err
	}
	c.requiredSkill = skill
	return nil
}

func (c *CreateJobCommand) setUrgency(urgency job.Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	c.urgency = urgency
	return nil
}
