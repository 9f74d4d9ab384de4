// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// persistence, and for the assignment saga an explicit compensation path.
package commands

import (
	"context"

	"fieldops/internal/core/ports"
)

// Unit of Work interfaces provide storage access for command handlers.
type (
	// TxManager handles database transaction lifecycle. Handlers that need
	// atomicity across both aggregates call Begin/Commit; the assignment
	// saga does not, so its two writes commit independently.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// EngineerRepoFactory provides access to the engineer repository.
	EngineerRepoFactory interface {
		EngineerRepository() ports.EngineerRepository
	}

	// JobUoW manages storage access for job-only operations.
	JobUoW interface {
		TxManager
		JobRepoFactory
	}

	// JobUoWFactory creates new job unit of work instances.
	JobUoWFactory interface {
		Create() JobUoW
	}

	// EngineerUoW manages storage access for engineer-only operations.
	EngineerUoW interface {
		TxManager
		EngineerRepoFactory
	}

	// EngineerUoWFactory creates new engineer unit of work instances.
	EngineerUoWFactory interface {
		Create() EngineerUoW
	}

	// UoW provides storage access across both aggregates. Repositories
	// obtained without Begin execute immediately against the main
	// connection; after Begin they share one transaction.
	UoW interface {
		TxManager
		JobRepoFactory
		EngineerRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
