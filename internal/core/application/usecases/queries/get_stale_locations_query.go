package queries

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

var ErrGetStaleLocationsQueryIsNotConstructed = errors.New(
	"GetStaleLocationsQuery must be created via NewGetStaleLocationsQuery constructor",
)

// GetStaleLocationsQuery asks for engineers whose last location fix is older
// than the given instant. Stale fixes degrade candidate ranking, so the
// background sweep surfaces them for follow-up.
type GetStaleLocationsQuery struct {
	olderThan time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleLocationsQuery creates a validated stale-location query.
func NewGetStaleLocationsQuery(olderThan time.Time) (GetStaleLocationsQuery, error) {
	if olderThan.IsZero() {
		return GetStaleLocationsQuery{}, errs.NewValueIsRequiredError("olderThan")
	}

	return GetStaleLocationsQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OlderThan returns the staleness cutoff.
func (q GetStaleLocationsQuery) OlderThan() time.Time {
	return q.olderThan
}

// Validate ensures the query was created through the constructor.
func (q GetStaleLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleLocationsQueryIsNotConstructed)
}

// GetStaleLocationsQueryResponse is one engineer with an outdated location
// fix.
type GetStaleLocationsQueryResponse struct {
	ID                kernel.UUID
	AgencyID          kernel.UUID
	Name              string
	Availability      string
	LocationUpdatedAt time.Time
}
