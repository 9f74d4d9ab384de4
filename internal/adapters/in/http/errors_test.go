package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/pkg/errs"
)

func Test_WriteDomainError_MapsErrorClasses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        errs.NewObjectNotFoundError("job", "some-id"),
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNotFound,
		},
		{
			name:       "forbidden",
			err:        errs.NewForbiddenError("job belongs to another agency"),
			wantStatus: http.StatusForbidden,
			wantCode:   CodeForbidden,
		},
		{
			name:       "conflict",
			err:        errs.NewConflictError("job is already assigned"),
			wantStatus: http.StatusConflict,
			wantCode:   CodeConflict,
		},
		{
			name:       "invalid value",
			err:        errs.NewValueIsInvalidError("urgency"),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidationError,
		},
		{
			name:       "required value",
			err:        errs.NewValueIsRequiredError("client name"),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidationError,
		},
		{
			name:       "out of range",
			err:        errs.NewValueIsOutOfRangeError("skill", 9, 1, 5),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidationError,
		},
		{
			name:       "storage",
			err:        errs.NewStorageError("assign job", errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeDatabaseError,
		},
		{
			name: "reconciliation",
			err: errs.NewReconciliationError(
				"job-id", "engineer-id", errors.New("write failed"), errors.New("revert failed")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeDatabaseError,
		},
		{
			name:       "unclassified",
			err:        errors.New("something odd"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)

			// Act
			require.NoError(t, writeDomainError(ctx, tt.err))

			// Assert
			assert.Equal(t, tt.wantStatus, rec.Code)
			var envelope ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.False(t, envelope.Error.Timestamp.IsZero())
		})
	}
}

func Test_WriteDomainError_HidesStorageDetail(t *testing.T) {
	// Arrange
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	// Act
	require.NoError(t, writeDomainError(ctx,
		errs.NewStorageError("assign job", errors.New("pq: password authentication failed"))))

	// Assert
	assert.NotContains(t, rec.Body.String(), "password")
}
