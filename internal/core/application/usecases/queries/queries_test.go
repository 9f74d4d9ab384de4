package queries_test

import (
	"testing"
	"time"

	"fieldops/internal/core/application/usecases/queries"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingJobsQuery_ValidInput(t *testing.T) {
	agencyID := kernel.NewUUID()
	query, err := queries.NewGetPendingJobsQuery(agencyID)
	require.NoError(t, err)
	assert.Equal(t, agencyID, query.AgencyID())
	assert.NoError(t, query.Validate())
}

func TestNewGetPendingJobsQuery_InvalidAgencyID(t *testing.T) {
	_, err := queries.NewGetPendingJobsQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetPendingJobsQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetPendingJobsQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingJobsQueryIsNotConstructed)
}

func TestNewGetAvailableEngineersQuery_ValidInput(t *testing.T) {
	agencyID := kernel.NewUUID()
	query, err := queries.NewGetAvailableEngineersQuery(agencyID)
	require.NoError(t, err)
	assert.Equal(t, agencyID, query.AgencyID())
	assert.NoError(t, query.Validate())
}

func TestNewGetAvailableEngineersQuery_InvalidAgencyID(t *testing.T) {
	_, err := queries.NewGetAvailableEngineersQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetAvailableEngineersQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetAvailableEngineersQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAvailableEngineersQueryIsNotConstructed)
}

func TestNewGetStaleLocationsQuery_ValidInput(t *testing.T) {
	cutoff := time.Now().Add(-time.Hour)
	query, err := queries.NewGetStaleLocationsQuery(cutoff)
	require.NoError(t, err)
	assert.Equal(t, cutoff, query.OlderThan())
	assert.NoError(t, query.Validate())
}

func TestNewGetStaleLocationsQuery_ZeroCutoff(t *testing.T) {
	_, err := queries.NewGetStaleLocationsQuery(time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetStaleLocationsQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetStaleLocationsQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetStaleLocationsQueryIsNotConstructed)
}
