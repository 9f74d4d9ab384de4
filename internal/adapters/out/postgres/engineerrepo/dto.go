// Package engineerrepo provides data transfer objects and mapping functions
// for engineer persistence.
package engineerrepo

import (
	"time"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EngineerDTO represents the database structure for persisting engineer
// aggregates. Location columns are nullable: an engineer who has never
// reported a position has no coordinates.
type EngineerDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgencyID          uuid.UUID `gorm:"type:uuid;index:idx_engineers_agency_availability"`
	Name              string
	Phone             string
	Availability      int `gorm:"index:idx_engineers_agency_availability"`
	Skill             int
	LocationLat       *float64
	LocationLon       *float64
	LocationUpdatedAt *time.Time
	CompletedCount    int
	Rating            float64
	SuccessRate       float64
}

// TableName overrides GORM's default naming to use "engineers".
func (EngineerDTO) TableName() string {
	return "engineers"
}

// fromDomain converts an engineer domain aggregate to its database
// representation.
func fromDomain(aggregate *engineer.Engineer) EngineerDTO {
	dto := EngineerDTO{
		ID:                aggregate.ID().Bytes(),
		AgencyID:          aggregate.AgencyID().Bytes(),
		Name:              aggregate.Name(),
		Phone:             aggregate.Phone(),
		Availability:      int(aggregate.Availability()),
		Skill:             int(aggregate.Skill()),
		LocationUpdatedAt: aggregate.LocationUpdatedAt(),
		CompletedCount:    aggregate.CompletedCount(),
		Rating:            aggregate.Rating(),
		SuccessRate:       aggregate.SuccessRate(),
	}

	if loc := aggregate.Location(); loc != nil {
		lat := loc.Latitude()
		lon := loc.Longitude()
		dto.LocationLat = &lat
		dto.LocationLon = &lon
	}

	return dto
}

// toDomain converts a database DTO back to an engineer domain aggregate.
func toDomain(dto EngineerDTO) (*engineer.Engineer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	agencyID, err := kernel.UUIDFromBytes(dto.AgencyID[:])
	if err != nil {
		return nil, err
	}

	skill, err := kernel.NewSkillLevel(dto.Skill)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLon != nil {
		loc, locErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLon)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return engineer.RestoreEngineer(
		id,
		agencyID,
		dto.Name,
		dto.Phone,
		engineer.Availability(dto.Availability),
		skill,
		location,
		dto.LocationUpdatedAt,
		dto.CompletedCount,
		dto.Rating,
		dto.SuccessRate,
	)
}
