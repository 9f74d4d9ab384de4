package jobrepo

import (
	"context"
	"errors"
	"time"

	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new job to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
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

// Update saves an existing job to the database. Last writer wins; the
// assignment transition must go through Assign instead.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
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

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves the agency's jobs in pending status.
func (r *GormJobRepository) GetAllPending(ctx context.Context, agencyID kernel.UUID) ([]*job.Job, error) {
	if err := agencyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "agency_id = ? AND status = ?", agencyID.Bytes(), job.Pending).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllAssigned retrieves every assigned job regardless of agency. Used by
// the reconciliation sweep, which repairs system-wide.
func (r *GormJobRepository) GetAllAssigned(ctx context.Context) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ?", job.Assigned).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetCompletedSince retrieves the agency's jobs completed at or after the
// given instant.
func (r *GormJobRepository) GetCompletedSince(
	ctx context.Context,
	agencyID kernel.UUID,
	since time.Time,
) ([]*job.Job, error) {
	if err := agencyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "agency_id = ? AND status = ? AND completed_at >= ?",
			agencyID.Bytes(), job.Completed, since).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Assign conditionally moves the job from pending to assigned. The predicate
// is evaluated by the database inside the UPDATE, so of N concurrent
// attempts exactly one sees RowsAffected == 1.
func (r *GormJobRepository) Assign(
	ctx context.Context,
	jobID, engineerID kernel.UUID,
	at time.Time,
) (bool, error) {
	if err := errors.Join(jobID.Validate(), engineerID.Validate()); err != nil {
		return false, err
	}

	engineerRaw := engineerID.Bytes()
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND status = ? AND engineer_id IS NULL", jobID.Bytes(), job.Pending).
		Updates(map[string]any{
			"status":      int(job.Assigned),
			"engineer_id": engineerRaw,
			"assigned_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Unassign conditionally reverses a landed assignment, guarded by "still
// assigned to this engineer". The compensating write of the assignment saga.
func (r *GormJobRepository) Unassign(ctx context.Context, jobID, engineerID kernel.UUID) (bool, error) {
	if err := errors.Join(jobID.Validate(), engineerID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND status = ? AND engineer_id = ?",
			jobID.Bytes(), job.Assigned, engineerID.Bytes()).
		Updates(map[string]any{
			"status":      int(job.Pending),
			"engineer_id": nil,
			"assigned_at": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func toDomainSlice(dtos []JobDTO) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
