package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates a state transition that the entity's current status does not permit,
// e.g. editing a posted journal entry or rejecting a cancelled transaction.
var ErrInvalidState = errors.New("operation not permitted in current state")

// ErrAlreadyApproved indicates a second approval attempt on a transaction that is already approved.
var ErrAlreadyApproved = errors.New("transaction already approved")

// ErrLockTimeout indicates that a row lock (reference sequence or account balance) could not be
// acquired within the configured lock_timeout. The whole unit of work has been rolled back and
// the caller should retry the operation from scratch.
var ErrLockTimeout = errors.New("timed out waiting for row lock")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps lower-level failures with a code and message for repository internals.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
