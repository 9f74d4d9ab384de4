package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// AssignmentResult is the outcome of a successful assignment: the updated
// job, a summary of the assigned engineer, the assignment record and
// whether the notification was delivered.
type AssignmentResult struct {
	Job              *job.Job
	Engineer         *engineer.Engineer
	AssignedAt       time.Time
	AssignedBy       ports.Actor
	NotificationSent bool
}

// AssignEngineerCommandHandler executes the dispatch core's multi-step
// assignment transition.
//
// The operation is a two-step saga over independently committed aggregates:
//
//  1. Local validation (job exists, tenant owns it, job unassigned,
//     engineer exists, same agency, engineer available). Reads only,
//     freely retryable.
//  2. Primary write: conditional update on the job row. The predicate from
//     the validation phase is re-checked atomically at write time, so of N
//     concurrent attempts on the same job at most one applies; the rest
//     observe not-applied and fail with a conflict.
//  3. Secondary write: conditional update on the engineer row (available ->
//     on_job). The guard closes the window in which a concurrent attempt
//     for the same engineer on a different job could slip between the two
//     writes.
//  4. Compensation: if the secondary write fails or does not apply, the job
//     write is reversed best-effort. If the compensating write itself
//     fails, the records are left inconsistent; this is logged with both
//     ids and both errors and surfaced as a reconciliation error for
//     offline repair.
//  5. Side effects: notification (best-effort, reported in the result) and
//     a realtime broadcast. Neither affects the outcome.
//
// There is deliberately no transaction spanning steps 2-3: the saga with a
// named compensating action is the contract, not cross-aggregate atomicity.
type AssignEngineerCommandHandler struct {
	uowFactory  UoWFactory
	authorizer  ports.Authorizer
	notifier    ports.NotificationDispatcher
	broadcaster ports.Broadcaster
	logger      *slog.Logger
}

// NewAssignEngineerCommandHandler creates the assignment coordinator.
func NewAssignEngineerCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	notifier ports.NotificationDispatcher,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) AssignEngineerCommandHandler {
	return AssignEngineerCommandHandler{
		uowFactory:  uowFactory,
		authorizer:  authorizer,
		notifier:    notifier,
		broadcaster: broadcaster,
		logger:      logger.With("component", "assign_engineer_handler"),
	}
}

// Handle processes the assignment command and returns the assignment result
// or a classified error: not-found, forbidden, conflict, storage, or
// reconciliation.
func (h AssignEngineerCommandHandler) Handle(
	ctx context.Context,
	command AssignEngineerCommand,
) (AssignmentResult, error) {
	if err := command.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	actor := command.Actor()
	if err := h.authorizer.Authorize(actor, ports.ActionAssignJob); err != nil {
		return AssignmentResult{}, err
	}

	// Repositories without Begin: each write commits independently.
	uow := h.uowFactory.Create()
	jobs := uow.JobRepository()
	engineers := uow.EngineerRepository()

	targetJob, err := jobs.Get(ctx, command.JobID())
	if err != nil {
		return AssignmentResult{}, err
	}

	if !targetJob.AgencyID().IsEqual(actor.AgencyID) {
		return AssignmentResult{}, errs.NewForbiddenError("job belongs to another agency")
	}

	if err = targetJob.ValidateAssign(); err != nil {
		return AssignmentResult{}, err
	}

	assignee, err := engineers.Get(ctx, command.EngineerID())
	if err != nil {
		return AssignmentResult{}, err
	}

	if !assignee.AgencyID().IsEqual(targetJob.AgencyID()) {
		return AssignmentResult{}, errs.NewForbiddenError("engineer belongs to another agency")
	}

	// The availability precondition; re-checked atomically by MarkOnJob
	// below. The error message names the engineer's actual status.
	if _, err = assignee.Availability().MarkOnJob(); err != nil {
		return AssignmentResult{}, err
	}

	assignedAt := time.Now().UTC()

	applied, err := jobs.Assign(ctx, targetJob.ID(), assignee.ID(), assignedAt)
	if err != nil {
		return AssignmentResult{}, errs.NewStorageError("assign job", err)
	}
	if !applied {
		// Lost the race: another assignment landed between the read and
		// the write. A normal concurrent outcome, not a retryable fault.
		return AssignmentResult{}, errs.NewConflictError("job is already assigned")
	}

	engApplied, engErr := engineers.MarkOnJob(ctx, assignee.ID())
	if engErr != nil || !engApplied {
		return AssignmentResult{}, h.compensate(ctx, targetJob, assignee, engErr)
	}

	// Reflect the committed transition on the in-memory aggregates for the
	// response.
	if err = targetJob.Assign(assignee.ID(), assignedAt); err != nil {
		return AssignmentResult{}, err
	}
	if err = assignee.MarkOnJob(); err != nil {
		return AssignmentResult{}, err
	}

	delivered := h.notifier.Notify(ctx, ports.AssignmentNotification{
		EngineerID: assignee.ID(),
		JobID:      targetJob.ID(),
		JobNumber:  targetJob.Number(),
		ClientName: targetJob.ClientName(),
	})

	engineerID := assignee.ID().String()
	h.broadcaster.Publish(ports.JobEvent{
		Kind:       ports.JobAssigned,
		AgencyID:   targetJob.AgencyID(),
		JobID:      targetJob.ID().String(),
		JobNumber:  targetJob.Number(),
		Status:     targetJob.Status().String(),
		EngineerID: engineerID,
		OccurredAt: assignedAt,
	})

	return AssignmentResult{
		Job:              targetJob,
		Engineer:         assignee,
		AssignedAt:       assignedAt,
		AssignedBy:       actor,
		NotificationSent: delivered,
	}, nil
}

// compensate reverses the job write after the engineer write failed or did
// not apply. It runs on a detached context so a caller-side timeout between
// the two writes cannot leave the job half-assigned. A failed compensation
// is the saga's terminal failure mode: logged with everything offline
// repair needs, and surfaced as a reconciliation error.
func (h AssignEngineerCommandHandler) compensate(
	ctx context.Context,
	targetJob *job.Job,
	assignee *engineer.Engineer,
	engErr error,
) error {
	uow := h.uowFactory.Create()
	jobs := uow.JobRepository()

	reverted, compErr := jobs.Unassign(context.WithoutCancel(ctx), targetJob.ID(), assignee.ID())
	if compErr == nil && !reverted {
		compErr = errs.NewConflictError("compensating update did not apply")
	}

	if compErr != nil {
		recErr := errs.NewReconciliationError(
			targetJob.ID().String(), assignee.ID().String(), engErr, compErr)
		h.logger.ErrorContext(ctx, "Assignment compensation failed, records left inconsistent",
			"job_id", targetJob.ID().String(),
			"engineer_id", assignee.ID().String(),
			"engineer_write_error", engErr,
			"compensation_error", compErr,
		)
		return recErr
	}

	if engErr != nil {
		h.logger.WarnContext(ctx, "Engineer write failed, assignment rolled back",
			"job_id", targetJob.ID().String(),
			"engineer_id", assignee.ID().String(),
			"error", engErr,
		)
		return errs.NewStorageError("update engineer availability", engErr)
	}

	// The engineer write applied nowhere because a concurrent assignment
	// took the engineer first.
	return errs.NewConflictError("engineer is no longer available")
}
