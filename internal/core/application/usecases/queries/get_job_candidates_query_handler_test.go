package queries_test

import (
	"context"
	"math"
	"testing"
	"time"

	"fieldops/internal/core/application/usecases/queries"
	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/services"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCandidatesJobRepository struct{ mock.Mock }

func (m *MockCandidatesJobRepository) Add(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockCandidatesJobRepository) Update(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockCandidatesJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockCandidatesJobRepository) GetAllPending(ctx context.Context, agencyID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockCandidatesJobRepository) GetAllAssigned(ctx context.Context) ([]*job.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockCandidatesJobRepository) GetCompletedSince(
	ctx context.Context,
	agencyID kernel.UUID,
	since time.Time,
) ([]*job.Job, error) {
	args := m.Called(ctx, agencyID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockCandidatesJobRepository) Assign(
	ctx context.Context,
	jobID, engineerID kernel.UUID,
	at time.Time,
) (bool, error) {
	args := m.Called(ctx, jobID, engineerID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidatesJobRepository) Unassign(ctx context.Context, jobID, engineerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, jobID, engineerID)
	return args.Bool(0), args.Error(1)
}

type MockCandidatesEngineerRepository struct{ mock.Mock }

func (m *MockCandidatesEngineerRepository) Add(ctx context.Context, e *engineer.Engineer) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockCandidatesEngineerRepository) Update(ctx context.Context, e *engineer.Engineer) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockCandidatesEngineerRepository) Get(ctx context.Context, id kernel.UUID) (*engineer.Engineer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engineer.Engineer), args.Error(1)
}

func (m *MockCandidatesEngineerRepository) GetAllAvailable(
	ctx context.Context,
	agencyID kernel.UUID,
) ([]*engineer.Engineer, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*engineer.Engineer), args.Error(1)
}

func (m *MockCandidatesEngineerRepository) MarkOnJob(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidatesEngineerRepository) Release(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCandidatesAuthorizer struct{ mock.Mock }

func (m *MockCandidatesAuthorizer) Authorize(actor ports.Actor, action ports.Action) error {
	args := m.Called(actor, action)
	return args.Error(0)
}

func restoreLocatedEngineer(
	t *testing.T,
	agencyID kernel.UUID,
	name string,
	skill int,
	lat, lon float64,
) *engineer.Engineer {
	t.Helper()
	level, err := kernel.NewSkillLevel(skill)
	require.NoError(t, err)
	location, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	now := time.Now().UTC()
	e, err := engineer.RestoreEngineer(
		kernel.NewUUID(), agencyID, name, "+447700900123",
		engineer.Available, level, &location, &now, 5, 4.0, 0.8,
	)
	require.NoError(t, err)
	return e
}

func TestGetJobCandidatesQueryHandler_Handle_RanksAndFilters(t *testing.T) {
	ctx := t.Context()
	agencyID := kernel.NewUUID()
	actor := ports.Actor{ID: kernel.NewUUID(), AgencyID: agencyID, Role: "dispatcher"}

	// Job in central London requiring skill 3.
	site, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)
	skill, err := kernel.NewSkillLevel(3)
	require.NoError(t, err)
	pending, err := job.NewJob(
		kernel.NewUUID(), "FS-2024-0042", agencyID, "Acme Heating",
		site, "11 Baker St, London", skill, job.Urgent, nil, time.Now().UTC(),
	)
	require.NoError(t, err)

	near := restoreLocatedEngineer(t, agencyID, "Near", 3, 51.51, -0.13)
	far := restoreLocatedEngineer(t, agencyID, "Far", 5, 52.2, 0.12)
	underskilled := restoreLocatedEngineer(t, agencyID, "Underskilled", 2, 51.5075, -0.1279)

	level, err := kernel.NewSkillLevel(4)
	require.NoError(t, err)
	unlocated, err := engineer.RestoreEngineer(
		kernel.NewUUID(), agencyID, "Unlocated", "+447700900456",
		engineer.Available, level, nil, nil, 0, 0, 0,
	)
	require.NoError(t, err)

	jobRepo := new(MockCandidatesJobRepository)
	engRepo := new(MockCandidatesEngineerRepository)
	jobRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	engRepo.On("GetAllAvailable", ctx, agencyID).
		Return([]*engineer.Engineer{far, near, underskilled, unlocated}, nil).Once()

	authorizer := new(MockCandidatesAuthorizer)
	authorizer.On("Authorize", actor, ports.ActionReadJobs).Return(nil).Once()

	handler := queries.NewGetJobCandidatesQueryHandler(
		jobRepo, engRepo, services.NewDistanceRanker(nil), authorizer,
	)

	query, err := queries.NewGetJobCandidatesQuery(pending.ID(), actor)
	require.NoError(t, err)

	ranked, err := handler.Handle(ctx, query)
	require.NoError(t, err)

	// The underskilled engineer is filtered out entirely; the unlocated one
	// ranks last.
	require.Len(t, ranked, 3)
	assert.Equal(t, "Near", ranked[0].Name)
	assert.Equal(t, "Far", ranked[1].Name)
	assert.Equal(t, "Unlocated", ranked[2].Name)
	assert.Equal(t, "haversine", ranked[0].DistanceSource)
	assert.Less(t, ranked[0].DistanceMeters, ranked[1].DistanceMeters)
	assert.True(t, math.IsInf(ranked[2].DistanceMeters, 1))
	assert.Equal(t, "none", ranked[2].DistanceSource)
	assert.Nil(t, ranked[0].DurationSeconds)
}

func TestGetJobCandidatesQueryHandler_Handle_JobFromAnotherAgency(t *testing.T) {
	ctx := t.Context()
	actor := ports.Actor{ID: kernel.NewUUID(), AgencyID: kernel.NewUUID(), Role: "dispatcher"}

	site, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)
	skill, err := kernel.NewSkillLevel(3)
	require.NoError(t, err)
	foreign, err := job.NewJob(
		kernel.NewUUID(), "FS-2024-0042", kernel.NewUUID(), "Acme Heating",
		site, "11 Baker St, London", skill, job.Urgent, nil, time.Now().UTC(),
	)
	require.NoError(t, err)

	jobRepo := new(MockCandidatesJobRepository)
	engRepo := new(MockCandidatesEngineerRepository)
	jobRepo.On("Get", ctx, foreign.ID()).Return(foreign, nil).Once()

	authorizer := new(MockCandidatesAuthorizer)
	authorizer.On("Authorize", actor, ports.ActionReadJobs).Return(nil).Once()

	handler := queries.NewGetJobCandidatesQueryHandler(
		jobRepo, engRepo, services.NewDistanceRanker(nil), authorizer,
	)

	query, err := queries.NewGetJobCandidatesQuery(foreign.ID(), actor)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, query)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	engRepo.AssertNotCalled(t, "GetAllAvailable")
}

func TestGetJobCandidatesQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetJobCandidatesQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetJobCandidatesQueryIsNotConstructed)
}
