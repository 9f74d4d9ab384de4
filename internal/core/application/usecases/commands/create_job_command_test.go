package commands_test

import (
	"testing"
	"time"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/job"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateJobCommand_ValidInput(t *testing.T) {
	site, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)
	skill, err := kernel.NewSkillLevel(3)
	require.NoError(t, err)

	jobID := kernel.NewUUID()
	actor := validActor()
	scheduledAt := time.Now().UTC().Add(2 * time.Hour)

	cmd, err := commands.NewCreateJobCommand(
		jobID, "FS-2024-0042", "Acme Heating",
		site, "11 Baker St, London", skill, job.Urgent, &scheduledAt, actor,
	)
	require.NoError(t, err)
	assert.Equal(t, jobID, cmd.JobID())
	assert.Equal(t, "FS-2024-0042", cmd.Number())
	assert.Equal(t, "Acme Heating", cmd.ClientName())
	assert.Equal(t, "11 Baker St, London", cmd.SiteAddress())
	assert.Equal(t, job.Urgent, cmd.Urgency())
	require.NotNil(t, cmd.ScheduledAt())
	assert.Equal(t, scheduledAt, *cmd.ScheduledAt())
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateJobCommand_NoScheduledAt(t *testing.T) {
	site, err := kernel.NewGeoPoint(51.5074, -0.1278)
	require.NoError(t, err)
	skill, err := kernel.NewSkillLevel(1)
	require.NoError(t, err)

	cmd, err := commands.NewCreateJobCommand(
		kernel.NewUUID(), "FS-2024-0043", "Acme Heating",
		site, "11 Baker St, London", skill, job.Routine, nil, validActor(),
	)
	require.NoError(t, err)
	assert.Nil(t, cmd.ScheduledAt())
}

func TestNewCreateJobCommand_EmptyNumber(t *testing.T) {
	site, _ := kernel.NewGeoPoint(51.5074, -0.1278)
	skill, _ := kernel.NewSkillLevel(3)

	_, err := commands.NewCreateJobCommand(
		kernel.NewUUID(), "  ", "Acme Heating",
		site, "11 Baker St, London", skill, job.Urgent, nil, validActor(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateJobCommand_EmptyClientName(t *testing.T) {
	site, _ := kernel.NewGeoPoint(51.5074, -0.1278)
	skill, _ := kernel.NewSkillLevel(3)

	_, err := commands.NewCreateJobCommand(
		kernel.NewUUID(), "FS-2024-0042", "",
		site, "11 Baker St, London", skill, job.Urgent, nil, validActor(),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateJobCommand_InvalidSite(t *testing.T) {
	skill, _ := kernel.NewSkillLevel(3)

	_, err := commands.NewCreateJobCommand(
		kernel.NewUUID(), "FS-2024-0042", "Acme Heating",
		kernel.GeoPoint{}, "11 Baker St, London", skill, job.Urgent, nil, validActor(),
	)
	require.Error(t, err)
}

func TestNewCreateJobCommand_InvalidUrgency(t *testing.T) {
	site, _ := kernel.NewGeoPoint(51.5074, -0.1278)
	skill, _ := kernel.NewSkillLevel(3)

	_, err := commands.NewCreateJobCommand(
		kernel.NewUUID(), "FS-2024-0042", "Acme Heating",
		site, "11 Baker St, London", skill, job.Urgency(99), nil, validActor(),
	)
	require.Error(t, err)
}

func TestCreateJobCommand_ZeroValueFailsValidation(t *testing.T) {
	var cmd commands.CreateJobCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateJobCommandIsNotConstructed)
}
