// Package jobrepo provides data transfer objects and mapping functions for
// job persistence. It implements the repository pattern for the job domain
// aggregate, converting between domain entities and database rows.
package jobrepo

import (
	"time"

	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting job aggregates.
// Indexed by agency and status for the pending-job listing, and by engineer
// for reconciliation sweeps.
type JobDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number        string    `gorm:"uniqueIndex"`
	AgencyID      uuid.UUID `gorm:"type:uuid;index:idx_jobs_agency_status"`
	ClientName    string
	Status        int         `gorm:"index:idx_jobs_agency_status"`
	EngineerID    *uuid.UUID  `gorm:"type:uuid;index"`
	AssignedAt    *time.Time
	Site          GeoPointDTO `gorm:"embedded;embeddedPrefix:site_"`
	SiteAddress   string
	RequiredSkill int
	Urgency       int
	ScheduledAt   *time.Time
	CreatedAt     time.Time
	AcceptedAt    *time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName overrides GORM's default naming to use "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// GeoPointDTO represents the embedded site coordinates within the job table.
type GeoPointDTO struct {
	Lat float64
	Lon float64
}

// fromDomain converts a job domain aggregate to its database representation.
func fromDomain(aggregate *job.Job) JobDTO {
	var engineerID *uuid.UUID
	if id := aggregate.EngineerID(); id != nil {
		raw := id.Bytes()
		engineerID = &raw
	}

	return JobDTO{
		ID:         aggregate.ID().Bytes(),
		Number:     aggregate.Number(),
		AgencyID:   aggregate.AgencyID().Bytes(),
		ClientName: aggregate.ClientName(),
		Status:     int(aggregate.Status()),
		EngineerID: engineerID,
		AssignedAt: aggregate.AssignedAt(),
		Site: GeoPointDTO{
			Lat: aggregate.Site().Latitude(),
			Lon: aggregate.Site().Longitude(),
		},
		SiteAddress:   aggregate.SiteAddress(),
		RequiredSkill: int(aggregate.RequiredSkill()),
		Urgency:       int(aggregate.Urgency()),
		ScheduledAt:   aggregate.ScheduledAt(),
		CreatedAt:     aggregate.CreatedAt(),
		AcceptedAt:    aggregate.AcceptedAt(),
		StartedAt:     aggregate.StartedAt(),
		CompletedAt:   aggregate.CompletedAt(),
		CancelledAt:   aggregate.CancelledAt(),
	}
}

// toDomain converts a database DTO back to a job domain aggregate using
// RestoreJob, which re-validates the status/engineer consistency.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	agencyID, err := kernel.UUIDFromBytes(dto.AgencyID[:])
	if err != nil {
		return nil, err
	}

	var engineerID *kernel.UUID
	if dto.EngineerID != nil {
		eID, engErr := kernel.UUIDFromBytes((*dto.EngineerID)[:])
		if engErr != nil {
			return nil, engErr
		}
		engineerID = &eID
	}

	site, err := kernel.NewGeoPoint(dto.Site.Lat, dto.Site.Lon)
	if err != nil {
		return nil, err
	}

	skill, err := kernel.NewSkillLevel(dto.RequiredSkill)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		id,
		dto.Number,
		agencyID,
		dto.ClientName,
		job.Status(dto.Status),
		engineerID,
		dto.AssignedAt,
		site,
		dto.SiteAddress,
		skill,
		job.Urgency(dto.Urgency),
		dto.ScheduledAt,
		dto.CreatedAt,
		dto.AcceptedAt,
		dto.StartedAt,
		dto.CompletedAt,
		dto.CancelledAt,
	)
}
