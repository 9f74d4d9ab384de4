package queries

import (
	"context"
	"database/sql"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableEngineersQueryHandler reads available engineers straight from
// the database, highest skill first.
type GetAvailableEngineersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableEngineersQueryHandler creates a handler for available
// engineer queries.
func NewGetAvailableEngineersQueryHandler(db *gorm.DB) GetAvailableEngineersQueryHandler {
	return GetAvailableEngineersQueryHandler{db: db}
}

// Handle executes the query and returns the agency's available engineers.
func (h GetAvailableEngineersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableEngineersQuery,
) ([]GetAvailableEngineersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	engineers := make([]GetAvailableEngineersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			skill,
			location_lat,
			location_lon,
			location_updated_at,
			completed_count,
			rating,
			success_rate
		FROM engineers
		WHERE agency_id = ? AND availability = ?
		ORDER BY skill DESC, rating DESC
	`, query.AgencyID().Bytes(), engineer.Available).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var engResp GetAvailableEngineersQueryResponse
		var id uuid.UUID
		var locationLat, locationLon sql.NullFloat64
		var locationUpdatedAt sql.NullTime

		err = rows.Scan(
			&id,
			&engResp.Name,
			&engResp.Skill,
			&locationLat,
			&locationLon,
			&locationUpdatedAt,
			&engResp.CompletedCount,
			&engResp.Rating,
			&engResp.SuccessRate,
		)
		if err != nil {
			return nil, err
		}

		engineerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		engResp.ID = engineerID

		if locationLat.Valid && locationLon.Valid {
			location, locErr := kernel.NewGeoPoint(locationLat.Float64, locationLon.Float64)
			if locErr != nil {
				return nil, locErr
			}
			engResp.Location = &location
		}
		if locationUpdatedAt.Valid {
			at := locationUpdatedAt.Time
			engResp.LocationUpdatedAt = &at
		}

		engineers = append(engineers, engResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return engineers, nil
}
