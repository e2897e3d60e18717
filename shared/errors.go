package shared

import (
	"errors"
	"net/http"
)

// AppError carries an HTTP status alongside the wrapped cause so handlers
// can surface a specific message without leaking internals.
type AppError struct {
	StatusCode int         `json:"code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Err        error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(statusCode int, err error, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// NewValidationError flags a malformed event payload. Caller bug, never
// retried.
func NewValidationError(err error, message string) *AppError {
	return NewAppError(http.StatusBadRequest, err, message)
}

func NewBadRequestError(err error, message string) *AppError {
	return NewAppError(http.StatusBadRequest, err, message)
}

// NewDuplicateBadgeError rejects a second award of the same badge name.
// Surfaced as a rejected request, not a crash.
func NewDuplicateBadgeError(name string) *AppError {
	return NewAppError(http.StatusBadRequest, errors.New("duplicate badge"), "Badge already earned: "+name)
}

func NewNotFoundError(err error, message string) *AppError {
	return NewAppError(http.StatusNotFound, err, message)
}

func NewUnauthorizedError(err error, message string) *AppError {
	return NewAppError(http.StatusUnauthorized, err, message)
}

func NewForbiddenError(err error, message string) *AppError {
	return NewAppError(http.StatusForbidden, err, message)
}

func NewConflictError(err error, message string) *AppError {
	return NewAppError(http.StatusConflict, err, message)
}

// NewStorageError wraps a persistence failure. The generic message is what
// callers see; the cause stays in the wrapped error.
func NewStorageError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, err, "Storage operation failed")
}

func NewInternalError(err error, message string) *AppError {
	return NewAppError(http.StatusInternalServerError, err, message)
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsValidationError(err error) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.StatusCode == http.StatusBadRequest
}

func IsNotFoundError(err error) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.StatusCode == http.StatusNotFound
}
