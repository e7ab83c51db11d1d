package models

import "fmt"

// AppError is the error kind every component hands back to the HTTP layer.
// Two AppErrors match with errors.Is when their codes are equal.
type AppError struct {
	Code    string
	Message string
	Err     error
}

const (
	CodeValidation       = "VALIDATION"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA"
	CodeInternal         = "INTERNAL"
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrValidation       = &AppError{Code: CodeValidation, Message: "invalid input"}
	ErrUnauthenticated  = &AppError{Code: CodeUnauthenticated, Message: "Token is not valid"}
	ErrForbidden        = &AppError{Code: CodeForbidden, Message: "Access denied"}
	ErrNotFound         = &AppError{Code: CodeNotFound, Message: "resource not found"}
	ErrConflict         = &AppError{Code: CodeConflict, Message: "resource already exists"}
	ErrUnsupportedMedia = &AppError{Code: CodeUnsupportedMedia, Message: "Only image files are allowed"}
)

func NewValidationError(format string, args ...any) *AppError {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthenticatedError(msg string, cause error) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: msg, Err: cause}
}

func NewForbiddenError(msg string) *AppError {
	return &AppError{Code: CodeForbidden, Message: msg}
}

// NewNotFoundError builds a 404 for the named resource, e.g. "Project".
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found"}
}

func NewConflictError(msg string) *AppError {
	return &AppError{Code: CodeConflict, Message: msg}
}

func NewUnsupportedMediaError(msg string) *AppError {
	return &AppError{Code: CodeUnsupportedMedia, Message: msg}
}

// NewInternalError wraps an unexpected failure. The message is for logs only.
func NewInternalError(msg string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: msg, Err: cause}
}
