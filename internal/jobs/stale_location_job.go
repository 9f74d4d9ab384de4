package jobs

import (
	"context"
	"log/slog"
	"time"

	"fieldops/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleLocationJob periodically reports engineers whose last location fix
// is older than the configured horizon. Stale fixes quietly degrade
// candidate ranking, so the job surfaces them at Warn level for follow-up.
type StaleLocationJob struct {
	handler queries.GetStaleLocationsQueryHandler
	horizon time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleLocationJob creates the stale-location report job.
func NewStaleLocationJob(
	handler queries.GetStaleLocationsQueryHandler,
	horizon time.Duration,
	logger *slog.Logger,
) *StaleLocationJob {
	return &StaleLocationJob{
		handler: handler,
		horizon: horizon,
		cron:    cron.New(),
		logger:  logger.With("component", "stale_location_job"),
	}
}

// Start begins the stale-location report on a five-minute schedule.
func (j *StaleLocationJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewGetStaleLocationsQuery(time.Now().UTC().Add(-j.horizon))
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale location query is invalid", "error", err)
			return
		}

		stale, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale location report failed", "error", err)
			return
		}

		for _, item := range stale {
			j.logger.WarnContext(ctx, "engineer location fix is stale",
				"engineer_id", item.ID.String(),
				"agency_id", item.AgencyID.String(),
				"name", item.Name,
				"availability", item.Availability,
				"last_fix", item.LocationUpdatedAt,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale location job started (running every five minutes)")
	return nil
}

// Stop stops the stale-location report.
func (j *StaleLocationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale location job stopped")
}
