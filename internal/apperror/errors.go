// Package apperror defines the error vocabulary shared by the engines,
// the action log and the HTTP layer. Callers classify failures with
// errors.Is against the sentinels; detail travels in the wrapped message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation covers bad input: non-positive quantities, missing
	// fields, attempts to touch immutable columns.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers unknown barcodes, shops, items and session ids.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers uniqueness violations such as a duplicate barcode.
	ErrConflict = errors.New("conflict")

	// ErrPersistence wraps storage failures.
	ErrPersistence = errors.New("persistence failure")

	// ErrInsufficientStock is raised when a sale or transfer asks for
	// more units than the source ledger holds.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUnknownItem marks an audit override for a barcode outside the
	// session's expected set.
	ErrUnknownItem = errors.New("item not part of audit session")

	// ErrSessionPaused and ErrSessionFinished guard the audit state machine.
	ErrSessionPaused   = errors.New("audit session is paused")
	ErrSessionFinished = errors.New("audit session is finished")

	// ErrUnauthorized covers failed logins and bad tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// Validationf builds an ErrValidation with detail.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds an ErrNotFound with detail.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf builds an ErrConflict with detail.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Unauthorizedf builds an ErrUnauthorized with detail.
func Unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// Persistence wraps a storage error, keeping the original inspectable.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrSessionPaused), errors.Is(err, ErrSessionFinished):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
