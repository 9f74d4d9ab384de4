package commands

import (
	"context"
	"time"

	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/ports"
)

// CreateJobCommandHandler handles the business logic for job creation.
// Creates jobs in pending status, owned by the actor's agency, ready for
// engineer assignment.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
	authorizer ports.Authorizer
}

// NewCreateJobCommandHandler creates a handler for job creation operations.
func NewCreateJobCommandHandler(uowFactory JobUoWFactory, authorizer ports.Authorizer) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
	}
}

// Handle processes the job creation command. Uses a transaction so the job
// is properly persisted or rolled back on error.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.authorizer.Authorize(cmd.Actor(), ports.ActionCreateJob); err != nil {
		return nil, err
	}

	newJob, err := job.NewJob(
		cmd.JobID(),
		cmd.Number(),
		cmd.Actor().AgencyID,
		cmd.ClientName(),
		cmd.Site(),
		cmd.SiteAddress(),
		cmd.RequiredSkill(),
		cmd.Urgency(),
		cmd.ScheduledAt(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, newJob); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newJob, nil
}
