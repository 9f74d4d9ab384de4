// Package queries contains read-side operations of the CQRS split. Query
// handlers bypass the domain model and read projections directly from the
// database for performance.
package queries

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

var ErrGetPendingJobsQueryIsNotConstructed = errors.New(
	"GetPendingJobsQuery must be created via NewGetPendingJobsQuery constructor",
)

// GetPendingJobsQuery retrieves an agency's jobs awaiting assignment,
// most urgent first.
type GetPendingJobsQuery struct {
	agencyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingJobsQuery creates a query scoped to the given agency.
func NewGetPendingJobsQuery(agencyID kernel.UUID) (GetPendingJobsQuery, error) {
	if err := agencyID.Validate(); err != nil {
		return GetPendingJobsQuery{}, err
	}
	return GetPendingJobsQuery{
		agencyID: agencyID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// AgencyID returns the agency whose jobs are requested.
func (q GetPendingJobsQuery) AgencyID() kernel.UUID { return q.agencyID }

// Validate ensures the query was created through the constructor.
func (q GetPendingJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingJobsQueryIsNotConstructed)
}

// GetPendingJobsQueryResponse is the read model of a job awaiting
// assignment.
type GetPendingJobsQueryResponse struct {
	ID            kernel.UUID
	Number        string
	ClientName    string
	Site          kernel.GeoPoint
	SiteAddress   string
	RequiredSkill int
	Urgency       string
	ScheduledAt   *time.Time
	CreatedAt     time.Time
}
