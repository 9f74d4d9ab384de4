package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// CompleteJobCommandHandler moves an onsite job to completed, releases
// the engineer and records the outcome against their track record. All
// writes happen in one transaction.
type CompleteJobCommandHandler struct {
	uowFactory  UoWFactory
	authorizer  ports.Authorizer
	broadcaster ports.Broadcaster
	logger      *slog.Logger
}

// NewCompleteJobCommandHandler creates a handler for job completion.
func NewCompleteJobCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) (CompleteJobCommandHandler, error) {
	if uowFactory == nil {
		return CompleteJobCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if authorizer == nil {
		return CompleteJobCommandHandler{}, errs.NewValueIsRequiredError("authorizer")
	}
	if broadcaster == nil {
		return CompleteJobCommandHandler{}, errs.NewValueIsRequiredError("broadcaster")
	}
	if logger == nil {
		return CompleteJobCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return CompleteJobCommandHandler{
		uowFactory:  uowFactory,
		authorizer:  authorizer,
		broadcaster: broadcaster,
		logger:      logger.With("component", "complete_job_handler"),
	}, nil
}

// Handle completes the job and releases its engineer.
func (h CompleteJobCommandHandler) Handle(ctx context.Context, cmd CompleteJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorizer.Authorize(cmd.Actor(), ports.ActionCompleteJob); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewStorageError("begin transaction", err)
	}
	defer uow.Rollback(ctx)

	targetJob, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	if !targetJob.AgencyID().IsEqual(cmd.Actor().AgencyID) {
		return errs.NewForbiddenError("job belongs to another agency")
	}

	engineerID := targetJob.EngineerID()
	if engineerID == nil {
		return errs.NewConflictError("job has no assigned engineer")
	}

	if err := targetJob.Complete(time.Now().UTC()); err != nil {
		return err
	}

	if err := uow.JobRepository().Update(ctx, targetJob); err != nil {
		return errs.NewStorageError("update job", err)
	}

	assignee, err := uow.EngineerRepository().Get(ctx, *engineerID)
	if err != nil {
		return err
	}

	if err := assignee.Release(); err != nil {
		h.logger.WarnContext(ctx, "completed job held an engineer who was not on_job",
			"job_id", cmd.JobID().String(),
			"engineer_id", engineerID.String(),
		)
	} else {
		assignee.RecordCompletion(cmd.Successful())
	}

	if err := uow.EngineerRepository().Update(ctx, assignee); err != nil {
		return errs.NewStorageError("update engineer", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.NewStorageError("commit transaction", err)
	}

	h.broadcaster.Publish(ports.JobEvent{
		Kind:       ports.JobCompleted,
		AgencyID:   targetJob.AgencyID(),
		JobID:      targetJob.ID().String(),
		JobNumber:  targetJob.Number(),
		Status:     targetJob.Status().String(),
		EngineerID: engineerID.String(),
		OccurredAt: time.Now().UTC(),
	})

	return nil
}
