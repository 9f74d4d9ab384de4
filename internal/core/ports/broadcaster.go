package ports

import (
	"time"

	"fieldops/internal/core/domain/model/kernel"
)

// JobEventKind names the committed state change a JobEvent describes.
type JobEventKind string

const (
	// JobAssigned is emitted when an assignment lands.
	JobAssigned JobEventKind = "job.assigned"
	// JobUnassigned is emitted when a compensating unassignment lands.
	JobUnassigned JobEventKind = "job.unassigned"
	// JobCancelled is emitted when a job is cancelled.
	JobCancelled JobEventKind = "job.cancelled"
	// JobCompleted is emitted when a job is completed.
	JobCompleted JobEventKind = "job.completed"
)

// JobEvent is a committed job mutation, published to realtime subscribers
// of the owning agency only.
type JobEvent struct {
	Kind       JobEventKind `json:"kind"`
	AgencyID   kernel.UUID  `json:"-"`
	JobID      string       `json:"job_id"`
	JobNumber  string       `json:"job_number"`
	Status     string       `json:"status"`
	EngineerID string       `json:"engineer_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// Broadcaster publishes committed job mutations to currently-connected
// subscribers of the event's agency. Delivery is at-most-once best-effort:
// no durability, no replay; a reconnecting subscriber re-fetches current
// state instead of relying on missed events. Publish never blocks the
// caller.
type Broadcaster interface {
	Publish(event JobEvent)
}
