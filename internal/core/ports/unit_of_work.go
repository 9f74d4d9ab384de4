package ports

import "context"

// UnitOfWork coordinates a storage transaction across both repositories.
// It serves single-aggregate-direction operations (creation, cancellation,
// completion). The assignment saga does not call Begin: its two writes
// commit independently and rely on a compensating action instead of
// cross-aggregate atomicity.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	JobRepository() JobRepository
	EngineerRepository() EngineerRepository
}

// UnitOfWorkFactory creates isolated UnitOfWork instances, one per business
// operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
