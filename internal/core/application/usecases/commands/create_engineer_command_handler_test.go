package commands_test

import (
	"errors"
	"testing"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEngineerUoWFactory struct{ mock.Mock }

func (m *MockEngineerUoWFactory) Create() commands.EngineerUoW {
	args := m.Called()
	return args.Get(0).(commands.EngineerUoW)
}

func newCreateEngineerCommand(t *testing.T, actor ports.Actor) commands.CreateEngineerCommand {
	t.Helper()
	skill, err := kernel.NewSkillLevel(4)
	require.NoError(t, err)

	cmd, err := commands.NewCreateEngineerCommand(
		kernel.NewUUID(), "Priya Shah", "+447700900123", skill, actor,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateEngineerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	cmd := newCreateEngineerCommand(t, actor)

	engRepo := new(MockEngineerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("EngineerRepository").Return(engRepo).Once(),
		engRepo.On("Add", ctx, mock.AnythingOfType("*engineer.Engineer")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEngineerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateEngineerCommandHandler(factory, permitAll())
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, engineer.Available, created.Availability())
	assert.True(t, created.AgencyID().IsEqual(actor.AgencyID))
	assert.Equal(t, "Priya Shah", created.Name())
	engRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateEngineerCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockEngineerUoWFactory)
	handler := commands.NewCreateEngineerCommandHandler(factory, permitAll())

	_, err := handler.Handle(ctx, commands.CreateEngineerCommand{})
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateEngineerCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateEngineerCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	actor := validActor()
	cmd := newCreateEngineerCommand(t, actor)

	authorizer := new(MockAuthorizer)
	authorizer.On("Authorize", actor, ports.ActionCreateEng).
		Return(errs.NewForbiddenError("role 'engineer' may not register engineers")).Once()

	factory := new(MockEngineerUoWFactory)
	handler := commands.NewCreateEngineerCommandHandler(factory, authorizer)

	_, err := handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateEngineerCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateEngineerCommand(t, validActor())

	engRepo := new(MockEngineerRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("EngineerRepository").Return(engRepo).Once(),
		engRepo.On("Add", ctx, mock.AnythingOfType("*engineer.Engineer")).
			Return(errors.New("insert error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEngineerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateEngineerCommandHandler(factory, permitAll())
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "insert error")
	uow.AssertNotCalled(t, "Commit")
}
