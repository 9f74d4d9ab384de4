// Package ports defines the interfaces between the dispatch core and its
// collaborators: persistence, routing, notification, realtime broadcast and
// authorization. These contracts enable dependency inversion and
// testability; implementations live under internal/adapters.
package ports

import (
	"context"
	"time"

	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates.
//
// Assign and Unassign are conditional updates: the predicate is re-checked
// atomically at the storage layer at write time and the boolean result
// reports whether the write applied. They are the only correctness-bearing
// concurrency mechanism of the assignment saga; a plain read-then-Update is
// not sufficient to close the race between concurrent assignment attempts.
type JobRepository interface {
	// Add persists a new job aggregate.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate. This is a plain
	// last-writer-wins update and must not be used for the assignment
	// transition.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetAllPending retrieves the agency's jobs awaiting assignment.
	GetAllPending(ctx context.Context, agencyID kernel.UUID) ([]*job.Job, error)

	// GetAllAssigned retrieves every job in assigned status across all
	// agencies, for the reconciliation sweep.
	GetAllAssigned(ctx context.Context) ([]*job.Job, error)

	// GetCompletedSince retrieves the agency's jobs completed at or after
	// the given instant.
	GetCompletedSince(ctx context.Context, agencyID kernel.UUID, since time.Time) ([]*job.Job, error)

	// Assign conditionally marks the job assigned to the engineer with the
	// given timestamp, guarded by "status is pending and no engineer is
	// assigned". Returns false (and no error) when the predicate did not
	// hold at write time, i.e. a concurrent assignment won the race.
	Assign(ctx context.Context, jobID, engineerID kernel.UUID, at time.Time) (bool, error)

	// Unassign conditionally reverses a landed assignment: status back to
	// pending, engineer reference and assignment timestamp cleared, guarded
	// by "status is assigned and the engineer reference matches". Used as
	// the compensating write of the assignment saga.
	Unassign(ctx context.Context, jobID, engineerID kernel.UUID) (bool, error)
}
