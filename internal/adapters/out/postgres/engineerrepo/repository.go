package engineerrepo

import (
	"context"
	"errors"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEngineerRepository implements EngineerRepository using GORM.
type GormEngineerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEngineerRepository creates a new GORM engineer repository.
func NewGormEngineerRepository(db *gorm.DB, tracker aggregateTracker) *GormEngineerRepository {
	return &GormEngineerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new engineer to the database.
func (r *GormEngineerRepository) Add(ctx context.Context, aggregate *engineer.Engineer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing engineer to the database. Last writer wins; the
// availability transitions of the assignment saga go through MarkOnJob and
// Release instead.
func (r *GormEngineerRepository) Update(ctx context.Context, aggregate *engineer.Engineer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&EngineerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an engineer by ID.
func (r *GormEngineerRepository) Get(ctx context.Context, id kernel.UUID) (*engineer.Engineer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EngineerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("engineer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves the agency's engineers in available status.
func (r *GormEngineerRepository) GetAllAvailable(
	ctx context.Context,
	agencyID kernel.UUID,
) ([]*engineer.Engineer, error) {
	if err := agencyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EngineerDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "agency_id = ? AND availability = ?", agencyID.Bytes(), engineer.Available).Error
	if err != nil {
		return nil, err
	}

	engineers := make([]*engineer.Engineer, 0, len(dtos))
	for _, dto := range dtos {
		e, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		engineers = append(engineers, e)
	}

	return engineers, nil
}

// MarkOnJob conditionally moves the engineer from available to on_job. The
// guard closes the race between two assignments targeting the same engineer.
func (r *GormEngineerRepository) MarkOnJob(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&EngineerDTO{}).
		Where("id = ? AND availability = ?", id.Bytes(), engineer.Available).
		Update("availability", int(engineer.OnJob))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Release conditionally moves the engineer from on_job back to available.
func (r *GormEngineerRepository) Release(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&EngineerDTO{}).
		Where("id = ? AND availability = ?", id.Bytes(), engineer.OnJob).
		Update("availability", int(engineer.Available))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
