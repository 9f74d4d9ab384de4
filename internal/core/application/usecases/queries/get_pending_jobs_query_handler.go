package queries

import (
	"context"
	"database/sql"
	"time"

	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingJobsQueryHandler reads pending jobs straight from the database,
// bypassing the aggregate. Emergency jobs come first, then by creation time.
type GetPendingJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingJobsQueryHandler creates a handler for pending job queries.
func NewGetPendingJobsQueryHandler(db *gorm.DB) GetPendingJobsQueryHandler {
	return GetPendingJobsQueryHandler{db: db}
}

// Handle executes the query and returns the agency's pending jobs.
func (h GetPendingJobsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingJobsQuery,
) ([]GetPendingJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]GetPendingJobsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			client_name,
			site_lat,
			site_lon,
			site_address,
			required_skill,
			urgency,
			scheduled_at,
			created_at
		FROM jobs
		WHERE agency_id = ? AND status = ?
		ORDER BY urgency DESC, created_at
	`, query.AgencyID().Bytes(), job.Pending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobResp GetPendingJobsQueryResponse
		var id uuid.UUID
		var siteLat, siteLon float64
		var urgency int
		var scheduledAt sql.NullTime
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&jobResp.Number,
			&jobResp.ClientName,
			&siteLat,
			&siteLon,
			&jobResp.SiteAddress,
			&jobResp.RequiredSkill,
			&urgency,
			&scheduledAt,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		jobResp.ID = jobID

		site, siteErr := kernel.NewGeoPoint(siteLat, siteLon)
		if siteErr != nil {
			return nil, siteErr
		}
		jobResp.Site = site

		jobResp.Urgency = job.Urgency(urgency).String()
		if scheduledAt.Valid {
			at := scheduledAt.Time
			jobResp.ScheduledAt = &at
		}
		jobResp.CreatedAt = createdAt

		jobs = append(jobs, jobResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
