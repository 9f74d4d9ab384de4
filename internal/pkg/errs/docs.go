// Package errs provides standardized error types for the fieldops application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - Value errors raised by domain constructors and setters
//     (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError)
//   - Operation errors raised by the dispatch core
//     (ObjectNotFoundError, ForbiddenError, ConflictError, StorageError,
//     ReconciliationError)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// The HTTP adapter maps sentinels to the wire error codes; causes carry
// internal detail (storage errors, provider errors) and are never surfaced
// to callers directly.
package errs
