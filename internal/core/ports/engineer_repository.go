package ports

import (
	"context"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/kernel"
)

// EngineerRepository defines the persistence contract for engineer
// aggregates.
//
// MarkOnJob and Release are conditional updates over the availability
// status, mirroring JobRepository.Assign/Unassign. MarkOnJob closes the
// window in which two assignments targeting the same engineer for different
// jobs could both pass the in-memory availability check.
type EngineerRepository interface {
	// Add persists a new engineer aggregate.
	Add(ctx context.Context, aggregate *engineer.Engineer) error

	// Update persists changes to an existing engineer aggregate.
	Update(ctx context.Context, aggregate *engineer.Engineer) error

	// Get retrieves an engineer aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*engineer.Engineer, error)

	// GetAllAvailable retrieves the agency's engineers whose availability
	// status is available, for candidate selection.
	GetAllAvailable(ctx context.Context, agencyID kernel.UUID) ([]*engineer.Engineer, error)

	// MarkOnJob conditionally sets availability to on_job, guarded by
	// "availability is available". Returns false when the engineer was no
	// longer available at write time.
	MarkOnJob(ctx context.Context, id kernel.UUID) (bool, error)

	// Release conditionally sets availability back to available, guarded by
	// "availability is on_job".
	Release(ctx context.Context, id kernel.UUID) (bool, error)
}
