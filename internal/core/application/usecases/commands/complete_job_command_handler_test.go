package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOnsiteJob(t *testing.T, agencyID, engineerID kernel.UUID) *job.Job {
	t.Helper()
	onsite := newPendingJob(t, agencyID)
	now := time.Now().UTC()
	require.NoError(t, onsite.Assign(engineerID, now))
	require.NoError(t, onsite.Accept(now))
	require.NoError(t, onsite.Start(now))
	require.NoError(t, onsite.Arrive())
	return onsite
}

func newOnJobEngineer(t *testing.T, id, agencyID kernel.UUID) *engineer.Engineer {
	t.Helper()
	skill, err := kernel.NewSkillLevel(3)
	require.NoError(t, err)
	assignee, err := engineer.RestoreEngineer(
		id, agencyID, "Priya Shah", "+447700900123",
		engineer.OnJob, skill, nil, nil, 9, 4.5, 8.0/9.0,
	)
	require.NoError(t, err)
	return assignee
}

func newCompleteHandler(t *testing.T, factory commands.UoWFactory, broadcaster ports.Broadcaster) commands.CompleteJobCommandHandler {
	t.Helper()
	handler, err := commands.NewCompleteJobCommandHandler(
		factory, permitAll(), broadcaster, slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)
	return handler
}

func TestCompleteJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	engineerID := kernel.NewUUID()
	onsite := newOnsiteJob(t, actor.AgencyID, engineerID)
	assignee := newOnJobEngineer(t, engineerID, actor.AgencyID)

	cmd, err := commands.NewCompleteJobCommand(onsite.ID(), true, actor)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	engRepo := new(MockEngineerRepository)
	uow := new(MockUoW)
	uow.On("JobRepository").Return(jobRepo)
	uow.On("EngineerRepository").Return(engRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	jobRepo.On("Get", ctx, onsite.ID()).Return(onsite, nil).Once()
	jobRepo.On("Update", ctx, mock.AnythingOfType("*job.Job")).Return(nil).Once()
	engRepo.On("Get", ctx, engineerID).Return(assignee, nil).Once()
	engRepo.On("Update", ctx, mock.AnythingOfType("*engineer.Engineer")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	broadcaster := captureBroadcaster()
	handler := newCompleteHandler(t, factory, broadcaster)

	require.NoError(t, handler.Handle(ctx, cmd))
	assert.Equal(t, job.Completed, onsite.Status())
	assert.Equal(t, engineer.Available, assignee.Availability())
	assert.Equal(t, 10, assignee.CompletedCount())
	assert.InDelta(t, 0.9, assignee.SuccessRate(), 1e-9)
	jobRepo.AssertExpectations(t)
	engRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	event := broadcaster.Calls[0].Arguments[0].(ports.JobEvent)
	assert.Equal(t, ports.JobCompleted, event.Kind)
	assert.Equal(t, "completed", event.Status)
	assert.Equal(t, engineerID.String(), event.EngineerID)
}

func TestCompleteJobCommandHandler_Handle_UnsuccessfulVisitLowersRate(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	engineerID := kernel.NewUUID()
	onsite := newOnsiteJob(t, actor.AgencyID, engineerID)
	assignee := newOnJobEngineer(t, engineerID, actor.AgencyID)

	cmd, err := commands.NewCompleteJobCommand(onsite.ID(), false, actor)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	engRepo := new(MockEngineerRepository)
	uow := new(MockUoW)
	uow.On("JobRepository").Return(jobRepo)
	uow.On("EngineerRepository").Return(engRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	jobRepo.On("Get", ctx, onsite.ID()).Return(onsite, nil).Once()
	jobRepo.On("Update", ctx, mock.AnythingOfType("*job.Job")).Return(nil).Once()
	engRepo.On("Get", ctx, engineerID).Return(assignee, nil).Once()
	engRepo.On("Update", ctx, mock.AnythingOfType("*engineer.Engineer")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newCompleteHandler(t, factory, captureBroadcaster())

	require.NoError(t, handler.Handle(ctx, cmd))
	assert.Equal(t, 10, assignee.CompletedCount())
	assert.InDelta(t, 0.8, assignee.SuccessRate(), 1e-9)
}

func TestCompleteJobCommandHandler_Handle_JobNotOnsite(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	engineerID := kernel.NewUUID()
	assigned := newPendingJob(t, actor.AgencyID)
	require.NoError(t, assigned.Assign(engineerID, time.Now().UTC()))

	cmd, err := commands.NewCompleteJobCommand(assigned.ID(), true, actor)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)
	uow.On("JobRepository").Return(jobRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	jobRepo.On("Get", ctx, assigned.ID()).Return(assigned, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newCompleteHandler(t, factory, new(MockBroadcaster))

	err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	jobRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestCompleteJobCommandHandler_Handle_NoEngineerAssigned(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	pending := newPendingJob(t, actor.AgencyID)

	cmd, err := commands.NewCompleteJobCommand(pending.ID(), true, actor)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)
	uow.On("JobRepository").Return(jobRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	jobRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newCompleteHandler(t, factory, new(MockBroadcaster))

	err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "no assigned engineer")
}

func TestCompleteJobCommandHandler_Handle_JobFromAnotherAgency(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	engineerID := kernel.NewUUID()
	foreign := newOnsiteJob(t, kernel.NewUUID(), engineerID)

	cmd, err := commands.NewCompleteJobCommand(foreign.ID(), true, actor)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)
	uow.On("JobRepository").Return(jobRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	jobRepo.On("Get", ctx, foreign.ID()).Return(foreign, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newCompleteHandler(t, factory, new(MockBroadcaster))

	err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
}
