package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrForbidden             = errors.New("forbidden")
	ErrBadRequest            = errors.New("bad request")
	ErrInternal              = errors.New("internal server error")
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("resource already exists")
	ErrNoStaffAvailable      = errors.New("no staff available to handle complaint")
	ErrComplaintFilingFailed = errors.New("complaint filing failed")
	ErrDeletionFailed        = errors.New("member deletion failed")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
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

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapErrorToStatus maps common errors to HTTP status codes.
// A wrapped taxonomy error wins over the wrapper, so a failed cascade
// that hit a missing row still reports 404.
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	// Default to internal server error
	return http.StatusInternalServerError
}

// PublicMessage returns the text that is safe to send to a client.
// Server-side failures never expose the underlying store error.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	if MapErrorToStatus(err) != http.StatusInternalServerError {
		return err.Error()
	}

	switch {
	case errors.Is(err, ErrNoStaffAvailable):
		return ErrNoStaffAvailable.Error()
	case errors.Is(err, ErrComplaintFilingFailed):
		return ErrComplaintFilingFailed.Error()
	case errors.Is(err, ErrDeletionFailed):
		return ErrDeletionFailed.Error()
	}
	return ErrInternal.Error()
}
