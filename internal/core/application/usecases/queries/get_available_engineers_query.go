package queries

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

var ErrGetAvailableEngineersQueryIsNotConstructed = errors.New(
	"GetAvailableEngineersQuery must be created via NewGetAvailableEngineersQuery constructor",
)

// GetAvailableEngineersQuery retrieves an agency's engineers who can take a
// new job right now.
type GetAvailableEngineersQuery struct {
	agencyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableEngineersQuery creates a query scoped to the given agency.
func NewGetAvailableEngineersQuery(agencyID kernel.UUID) (GetAvailableEngineersQuery, error) {
	if err := agencyID.Validate(); err != nil {
		return GetAvailableEngineersQuery{}, err
	}
	return GetAvailableEngineersQuery{
		agencyID: agencyID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// AgencyID returns the agency whose engineers are requested.
func (q GetAvailableEngineersQuery) AgencyID() kernel.UUID { return q.agencyID }

// Validate ensures the query was created through the constructor.
func (q GetAvailableEngineersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableEngineersQueryIsNotConstructed)
}

// GetAvailableEngineersQueryResponse is the read model of an available
// engineer. Location is nil when the engineer has never reported one.
type GetAvailableEngineersQueryResponse struct {
	ID                kernel.UUID
	Name              string
	Skill             int
	Location          *kernel.GeoPoint
	LocationUpdatedAt *time.Time
	CompletedCount    int
	Rating            float64
	SuccessRate       float64
}
