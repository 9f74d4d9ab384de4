package queries

import (
	"context"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleLocationsQueryHandler reads engineers with outdated location
// fixes straight from the database, oldest fix first. Engineers who never
// reported a location are not stale; they simply rank last.
type GetStaleLocationsQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleLocationsQueryHandler creates a handler for stale-location
// queries.
func NewGetStaleLocationsQueryHandler(db *gorm.DB) GetStaleLocationsQueryHandler {
	return GetStaleLocationsQueryHandler{db: db}
}

// Handle executes the query and returns engineers whose fix predates the
// cutoff.
func (h GetStaleLocationsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleLocationsQuery,
) ([]GetStaleLocationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stale := make([]GetStaleLocationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			agency_id,
			name,
			availability,
			location_updated_at
		FROM engineers
		WHERE location_updated_at IS NOT NULL AND location_updated_at < ?
		ORDER BY location_updated_at
	`, query.OlderThan()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetStaleLocationsQueryResponse
		var id, agencyID uuid.UUID
		var availability int

		err = rows.Scan(
			&id,
			&agencyID,
			&resp.Name,
			&availability,
			&resp.LocationUpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		engineerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = engineerID

		ownerID, idErr := kernel.UUIDFromBytes(agencyID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.AgencyID = ownerID

		resp.Availability = engineer.Availability(availability).String()

		stale = append(stale, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}
