// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. ReconciliationJob - Runs every minute to repair engineer availability
// records left inconsistent when an assignment's compensating write failed
// 2. StaleLocationJob - Runs every five minutes to report engineers whose
// last location fix is older than the configured horizon
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, staleLocationHandler, horizon, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The reconciliation sweep continues past individual record failures and
// only returns an error when the scan itself fails
// - The stale location report is advisory; it logs and never modifies state
// - Failed job starts will stop any already running jobs
package jobs
