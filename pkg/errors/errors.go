package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the application-level error carried from the domain to the HTTP layer.
// Design notes:
// 1. Code is the business code clients branch on; Status() derives the HTTP status from it
// 2. Message is safe to show to callers
// 3. Fields holds per-field messages for validation failures
// 4. Err is the internal cause, logged but never serialized
type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"errors,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code, so a sentinel matches copies that carry
// extra detail (see WithMessage, WithFields).
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Status maps the business code onto an HTTP status.
func (e *AppError) Status() int {
	switch {
	case e.Code == ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case e.Code >= 40900 && e.Code < 41000:
		return http.StatusConflict
	case e.Code >= 40400 && e.Code < 40500:
		return http.StatusNotFound
	case e.Code >= 40000 && e.Code < 40100:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WithMessage returns a copy with a different user-facing message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithFields returns a copy carrying field-level messages.
func (e *AppError) WithFields(fields map[string]string) *AppError {
	cp := *e
	cp.Fields = fields
	return &cp
}

// New creates an AppError.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap hides an infrastructure error (database, broker, network) behind an internal AppError.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// Error codes
// =========================================
// - 400xx: invalid input
// - 404xx: missing resources
// - 409xx: conflicts
// - 500xx: server side failures

const (
	ErrCodeInternal      = 50000 // internal error
	ErrCodeDatabaseError = 50001 // database error
	ErrCodeRedisError    = 50002 // redis error
	ErrCodeBrokerError   = 50003 // message broker error

	ErrCodeInvalidParams   = 40000 // malformed request
	ErrCodeValidation      = 40001 // field constraint violated
	ErrCodeInvalidGenre    = 40002 // genre not in the registry
	ErrCodeBindError       = 40003 // body or query could not be decoded
	ErrCodeTooManyRequests = 40029 // rate limit exceeded

	ErrCodeNotFound     = 40400 // generic missing resource
	ErrCodeBookNotFound = 40401 // book does not exist

	ErrCodeConflict            = 40900 // generic conflict
	ErrCodeDuplicateBook       = 40901 // same title and author already stored
	ErrCodeConstraintViolation = 40902 // store rejected the write on a unique constraint
)

var (
	ErrInternal      = New(ErrCodeInternal, "internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "database error")
	ErrRedisError    = New(ErrCodeRedisError, "cache backend error")

	ErrInvalidParams   = New(ErrCodeInvalidParams, "invalid parameters")
	ErrBindError       = New(ErrCodeBindError, "malformed request")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "too many requests")

	ErrNotFound     = New(ErrCodeNotFound, "resource not found")
	ErrBookNotFound = New(ErrCodeBookNotFound, "book not found")
)

// =========================================
// Helpers
// =========================================

// IsAppError reports whether err carries an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, wrapping anything else as internal.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}
