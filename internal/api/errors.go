package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/service"
	"github.com/dmuriuki/taskforge-api/internal/service/auth"
	"github.com/dmuriuki/taskforge-api/internal/store"
)

// Query-parameter parse errors. Their messages are safe to return verbatim.
var (
	errInvalidDueDateParam = errors.New("invalid due_date parameter, expected YYYY-MM-DD")
	errInvalidPageParam    = errors.New("invalid page parameter, expected a non-negative integer")
	errInvalidSizeParam    = errors.New("invalid size parameter, expected a positive integer")
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrTaskAlreadyExists),
		errors.Is(err, store.ErrTaskExists),
		errors.Is(err, service.ErrConcurrentModification),
		errors.Is(err, store.ErrConcurrentModification):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrTaskAlreadyExists),
		errors.Is(err, store.ErrTaskExists):
		return "A task with this title already exists"

	case errors.Is(err, service.ErrConcurrentModification),
		errors.Is(err, store.ErrConcurrentModification):
		return "The task was modified by another request, please retry"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid task data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format:
	// "Key: 'CreateTaskRequest.Title' Error:Field validation for 'Title' failed on the 'min' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
