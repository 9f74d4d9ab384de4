package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fieldops/internal/pkg/errs"
)

// Machine-readable error codes of the API envelope.
const (
	CodeInvalidID       = "INVALID_ID"
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   any       `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// ErrorEnvelope wraps ErrorBody under the "error" key.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

func writeError(ctx echo.Context, status int, code, message string, details any) error {
	return ctx.JSON(status, ErrorEnvelope{
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC(),
			RequestID: ctx.Response().Header().Get(echo.HeaderXRequestID),
		},
	})
}

// writeDomainError maps a classified core error onto the envelope. Storage
// and reconciliation failures surface as a generic database error so their
// internal text never reaches the client.
func writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, CodeNotFound, err.Error(), nil)
	case errors.Is(err, errs.ErrForbidden):
		return writeError(ctx, http.StatusForbidden, CodeForbidden, err.Error(), nil)
	case errors.Is(err, errs.ErrConflict):
		return writeError(ctx, http.StatusConflict, CodeConflict, err.Error(), nil)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeError(ctx, http.StatusBadRequest, CodeValidationError, err.Error(), nil)
	case errors.Is(err, errs.ErrStorage), errors.Is(err, errs.ErrReconciliation):
		return writeError(ctx, http.StatusInternalServerError, CodeDatabaseError,
			"a storage operation failed", nil)
	default:
		return writeError(ctx, http.StatusInternalServerError, CodeInternalError,
			"an unexpected error occurred", nil)
	}
}
