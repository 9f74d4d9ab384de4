package commands_test

import (
	"errors"
	"testing"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

func newCreateJobCommand(t *testing.T, actor ports.Actor) commands.CreateJobCommand {
	t.Helper()
	site, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)
	skill, err := kernel.NewSkillLevel(3)
	require.NoError(t, err)

	cmd, err := commands.NewCreateJobCommand(
		kernel.NewUUID(), "FS-2024-0042", "Acme Heating",
		site, "11 Baker St, London", skill, job.Urgent, nil, actor,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateJobCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	cmd := newCreateJobCommand(t, actor)

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Add", ctx, mock.AnythingOfType("*job.Job")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateJobCommandHandler(factory, permitAll())
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, job.Pending, created.Status())
	assert.True(t, created.AgencyID().IsEqual(actor.AgencyID))
	assert.Equal(t, "FS-2024-0042", created.Number())
	assert.Nil(t, created.EngineerID())
	jobRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateJobCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockJobUoWFactory)
	handler := commands.NewCreateJobCommandHandler(factory, permitAll())

	_, err := handler.Handle(ctx, commands.CreateJobCommand{})
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateJobCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateJobCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	cmd := newCreateJobCommand(t, actor)

	authorizer := new(MockAuthorizer)
	authorizer.On("Authorize", actor, ports.ActionCreateJob).
		Return(errs.NewForbiddenError("role 'engineer' may not create jobs")).Once()

	factory := new(MockJobUoWFactory)
	handler := commands.NewCreateJobCommandHandler(factory, authorizer)

	_, err := handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateJobCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateJobCommand(t, validActor())

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Add", ctx, mock.AnythingOfType("*job.Job")).
			Return(errors.New("insert error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateJobCommandHandler(factory, permitAll())
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "insert error")
	uow.AssertNotCalled(t, "Commit")
}

func TestCreateJobCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateJobCommand(t, validActor())

	jobRepo := new(MockJobRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("JobRepository").Return(jobRepo).Once(),
		jobRepo.On("Add", ctx, mock.AnythingOfType("*job.Job")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateJobCommandHandler(factory, permitAll())
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
