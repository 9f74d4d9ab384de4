package ports

import (
	"context"

	"fieldops/internal/core/domain/model/kernel"
)

// AssignmentNotification carries what the assigned engineer needs to know
// about their new job.
type AssignmentNotification struct {
	EngineerID kernel.UUID
	JobID      kernel.UUID
	JobNumber  string
	ClientName string
}

// NotificationDispatcher delivers assignment notifications best-effort.
// Notify never returns an error: internal failures are reported as
// delivered=false and must not affect the outcome of the assignment.
type NotificationDispatcher interface {
	Notify(ctx context.Context, n AssignmentNotification) (delivered bool)
}
