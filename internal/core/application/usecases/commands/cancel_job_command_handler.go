package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// CancelJobCommandHandler cancels a job and, when one is assigned,
// releases its engineer inside the same transaction.
type CancelJobCommandHandler struct {
	uowFactory  UoWFactory
	authorizer  ports.Authorizer
	broadcaster ports.Broadcaster
	logger      *slog.Logger
}

// NewCancelJobCommandHandler creates a handler for job cancellation.
func NewCancelJobCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) (CancelJobCommandHandler, error) {
	if uowFactory == nil {
		return CancelJobCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if authorizer == nil {
		return CancelJobCommandHandler{}, errs.NewValueIsRequiredError("authorizer")
	}
	if broadcaster == nil {
		return CancelJobCommandHandler{}, errs.NewValueIsRequiredError("broadcaster")
	}
	if logger == nil {
		return CancelJobCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return CancelJobCommandHandler{
		uowFactory:  uowFactory,
		authorizer:  authorizer,
		broadcaster: broadcaster,
		logger:      logger.With("component", "cancel_job_handler"),
	}, nil
}

// Handle cancels the job. Unlike assignment, cancellation runs in a
// single transaction: both the job row and the engineer row change
// together or not at all.
func (h CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.authorizer.Authorize(cmd.Actor(), ports.ActionCancelJob); err != nil {
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

	assignedEngineerID := targetJob.EngineerID()

	if err := targetJob.Cancel(time.Now().UTC()); err != nil {
		return err
	}

	if err := uow.JobRepository().Update(ctx, targetJob); err != nil {
		return errs.NewStorageError("update job", err)
	}

	if assignedEngineerID != nil {
		released, err := uow.EngineerRepository().Release(ctx, *assignedEngineerID)
		if err != nil {
			return errs.NewStorageError("release engineer", err)
		}
		if !released {
			// The engineer row was not on_job, so there is nothing to
			// release. The cancellation itself still proceeds.
			h.logger.WarnContext(ctx, "cancelled job held an engineer who was not on_job",
				"job_id", cmd.JobID().String(),
				"engineer_id", assignedEngineerID.String(),
			)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.NewStorageError("commit transaction", err)
	}

	event := ports.JobEvent{
		Kind:       ports.JobCancelled,
		AgencyID:   targetJob.AgencyID(),
		JobID:      targetJob.ID().String(),
		JobNumber:  targetJob.Number(),
		Status:     targetJob.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	if assignedEngineerID != nil {
		event.EngineerID = assignedEngineerID.String()
	}
	h.broadcaster.Publish(event)

	return nil
}
