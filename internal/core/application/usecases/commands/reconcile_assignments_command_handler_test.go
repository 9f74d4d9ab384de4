package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
)

func newAssignedJob(t *testing.T, agencyID, engineerID kernel.UUID) *job.Job {
	t.Helper()
	assigned := newPendingJob(t, agencyID)
	require.NoError(t, assigned.Assign(engineerID, time.Now().UTC()))
	return assigned
}

func newAvailableEngineer(t *testing.T, id, agencyID kernel.UUID) *engineer.Engineer {
	t.Helper()
	skill, err := kernel.NewSkillLevel(3)
	require.NoError(t, err)
	available, err := engineer.RestoreEngineer(
		id, agencyID, "Priya Shah", "+447700900123",
		engineer.Available, skill, nil, nil, 9, 4.5, 8.0/9.0,
	)
	require.NoError(t, err)
	return available
}

func newReconcileHandler(t *testing.T, factory commands.UoWFactory) commands.ReconcileAssignmentsCommandHandler {
	t.Helper()
	handler, err := commands.NewReconcileAssignmentsCommandHandler(
		factory, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return handler
}

func Test_ReconcileAssignmentsCommandHandler_RepairsInconsistentEngineer(t *testing.T) {
	// Arrange
	agencyID := kernel.NewUUID()
	engineerID := kernel.NewUUID()
	assigned := newAssignedJob(t, agencyID, engineerID)
	dangling := newAvailableEngineer(t, engineerID, agencyID)

	jobs := &MockJobRepository{}
	engineers := &MockEngineerRepository{}
	uow := &MockUoW{}
	uow.On("JobRepository").Return(jobs)
	uow.On("EngineerRepository").Return(engineers)
	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)

	jobs.On("GetAllAssigned", mock.Anything).Return([]*job.Job{assigned}, nil)
	engineers.On("Get", mock.Anything, engineerID).Return(dangling, nil)
	engineers.On("MarkOnJob", mock.Anything, engineerID).Return(true, nil)

	handler := newReconcileHandler(t, factory)

	// Act
	err := handler.Handle(t.Context(), commands.NewReconcileAssignmentsCommand())

	// Assert
	require.NoError(t, err)
	engineers.AssertExpectations(t)
}

func Test_ReconcileAssignmentsCommandHandler_LeavesConsistentPairsAlone(t *testing.T) {
	// Arrange
	agencyID := kernel.NewUUID()
	engineerID := kernel.NewUUID()
	assigned := newAssignedJob(t, agencyID, engineerID)
	holder := newOnJobEngineer(t, engineerID, agencyID)

	jobs := &MockJobRepository{}
	engineers := &MockEngineerRepository{}
	uow := &MockUoW{}
	uow.On("JobRepository").Return(jobs)
	uow.On("EngineerRepository").Return(engineers)
	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)

	jobs.On("GetAllAssigned", mock.Anything).Return([]*job.Job{assigned}, nil)
	engineers.On("Get", mock.Anything, engineerID).Return(holder, nil)

	handler := newReconcileHandler(t, factory)

	// Act
	err := handler.Handle(t.Context(), commands.NewReconcileAssignmentsCommand())

	// Assert
	require.NoError(t, err)
	engineers.AssertNotCalled(t, "MarkOnJob", mock.Anything, mock.Anything)
}

func Test_ReconcileAssignmentsCommandHandler_ContinuesPastFailures(t *testing.T) {
	// Arrange
	agencyID := kernel.NewUUID()
	brokenEngineerID := kernel.NewUUID()
	danglingEngineerID := kernel.NewUUID()
	broken := newAssignedJob(t, agencyID, brokenEngineerID)
	repairable := newAssignedJob(t, agencyID, danglingEngineerID)
	dangling := newAvailableEngineer(t, danglingEngineerID, agencyID)

	jobs := &MockJobRepository{}
	engineers := &MockEngineerRepository{}
	uow := &MockUoW{}
	uow.On("JobRepository").Return(jobs)
	uow.On("EngineerRepository").Return(engineers)
	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)

	jobs.On("GetAllAssigned", mock.Anything).Return([]*job.Job{broken, repairable}, nil)
	engineers.On("Get", mock.Anything, brokenEngineerID).Return(nil, errors.New("row is corrupt"))
	engineers.On("Get", mock.Anything, danglingEngineerID).Return(dangling, nil)
	engineers.On("MarkOnJob", mock.Anything, danglingEngineerID).Return(true, nil)

	handler := newReconcileHandler(t, factory)

	// Act
	err := handler.Handle(t.Context(), commands.NewReconcileAssignmentsCommand())

	// Assert
	require.NoError(t, err)
	engineers.AssertExpectations(t)
}

func Test_ReconcileAssignmentsCommandHandler_LogsUnrepairableEngineer(t *testing.T) {
	// Arrange
	agencyID := kernel.NewUUID()
	engineerID := kernel.NewUUID()
	assigned := newAssignedJob(t, agencyID, engineerID)

	skill, err := kernel.NewSkillLevel(3)
	require.NoError(t, err)
	offline, err := engineer.RestoreEngineer(
		engineerID, agencyID, "Priya Shah", "+447700900123",
		engineer.Offline, skill, nil, nil, 9, 4.5, 8.0/9.0,
	)
	require.NoError(t, err)

	jobs := &MockJobRepository{}
	engineers := &MockEngineerRepository{}
	uow := &MockUoW{}
	uow.On("JobRepository").Return(jobs)
	uow.On("EngineerRepository").Return(engineers)
	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)

	jobs.On("GetAllAssigned", mock.Anything).Return([]*job.Job{assigned}, nil)
	engineers.On("Get", mock.Anything, engineerID).Return(offline, nil)
	engineers.On("MarkOnJob", mock.Anything, engineerID).Return(false, nil)

	handler := newReconcileHandler(t, factory)

	// Act
	handleErr := handler.Handle(t.Context(), commands.NewReconcileAssignmentsCommand())

	// Assert
	require.NoError(t, handleErr)
	engineers.AssertExpectations(t)
}

func Test_ReconcileAssignmentsCommandHandler_FailsWhenScanFails(t *testing.T) {
	// Arrange
	jobs := &MockJobRepository{}
	uow := &MockUoW{}
	uow.On("JobRepository").Return(jobs)
	uow.On("EngineerRepository").Return(&MockEngineerRepository{})
	factory := &MockUoWFactory{}
	factory.On("Create").Return(uow)

	jobs.On("GetAllAssigned", mock.Anything).Return(nil, errors.New("connection reset"))

	handler := newReconcileHandler(t, factory)

	// Act
	err := handler.Handle(t.Context(), commands.NewReconcileAssignmentsCommand())

	// Assert
	assert.Error(t, err)
}
