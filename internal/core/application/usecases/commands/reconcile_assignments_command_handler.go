package commands

import (
	"context"
	"log/slog"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/pkg/errs"
)

// ReconcileAssignmentsCommandHandler repairs the inconsistency a failed
// assignment compensation leaves behind: a job in assigned status whose
// engineer is not marked on_job.
//
// The repair mirrors the saga's secondary write: a conditional availability
// update that only applies while the engineer is still available. Engineers
// who are offline or on leave are logged but left for manual follow-up,
// since forcing them on_job would invent state the saga never wrote.
type ReconcileAssignmentsCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewReconcileAssignmentsCommandHandler creates the reconciliation sweep
// handler.
func NewReconcileAssignmentsCommandHandler(
	uowFactory UoWFactory,
	logger *slog.Logger,
) (ReconcileAssignmentsCommandHandler, error) {
	if uowFactory == nil {
		return ReconcileAssignmentsCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		return ReconcileAssignmentsCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return ReconcileAssignmentsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_assignments_handler"),
	}, nil
}

// Handle scans all assigned jobs and repairs mismatched engineer
// availability. The sweep continues past individual failures so one bad
// record cannot block the rest.
func (h ReconcileAssignmentsCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileAssignmentsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	jobs := uow.JobRepository()
	engineers := uow.EngineerRepository()

	assigned, err := jobs.GetAllAssigned(ctx)
	if err != nil {
		return errs.NewStorageError("list assigned jobs", err)
	}

	for _, assignedJob := range assigned {
		engineerID := assignedJob.EngineerID()
		if engineerID == nil {
			// RestoreJob rejects assigned rows without an engineer, so this
			// only happens on a concurrent unassignment between the scan and
			// now.
			continue
		}

		holder, err := engineers.Get(ctx, *engineerID)
		if err != nil {
			h.logger.ErrorContext(ctx, "reconciliation could not load engineer",
				"job_id", assignedJob.ID().String(),
				"engineer_id", engineerID.String(),
				"error", err,
			)
			continue
		}

		if holder.Availability() == engineer.OnJob {
			continue
		}

		h.logger.ErrorContext(ctx, "assigned job holds an engineer who is not on_job",
			"job_id", assignedJob.ID().String(),
			"engineer_id", engineerID.String(),
			"availability", holder.Availability().String(),
		)

		repaired, err := engineers.MarkOnJob(ctx, *engineerID)
		if err != nil {
			h.logger.ErrorContext(ctx, "reconciliation repair failed",
				"job_id", assignedJob.ID().String(),
				"engineer_id", engineerID.String(),
				"error", err,
			)
			continue
		}

		if repaired {
			h.logger.InfoContext(ctx, "engineer availability repaired",
				"job_id", assignedJob.ID().String(),
				"engineer_id", engineerID.String(),
			)
		} else {
			h.logger.WarnContext(ctx, "engineer not repairable, needs manual follow-up",
				"job_id", assignedJob.ID().String(),
				"engineer_id", engineerID.String(),
				"availability", holder.Availability().String(),
			)
		}
	}

	return nil
}
