package jobs

import (
	"context"
	"log/slog"

	"fieldops/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReconciliationJob periodically sweeps assigned jobs for engineers whose
// availability record was left inconsistent by a failed compensation.
// Runs every minute; the sweep itself is idempotent.
type ReconciliationJob struct {
	handler commands.ReconcileAssignmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReconciliationJob creates the reconciliation sweep job.
func NewReconciliationJob(
	handler commands.ReconcileAssignmentsCommandHandler,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "reconciliation_job"),
	}
}

// Start begins the reconciliation sweep on a once-a-minute schedule.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReconcileAssignmentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation sweep.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
