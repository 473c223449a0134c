package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/service"
	"github.com/dmuriuki/taskforge-api/internal/service/auth"
	"github.com/dmuriuki/taskforge-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"service task not found", service.ErrTaskNotFound, http.StatusNotFound},
		{"store task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"service duplicate", service.ErrTaskAlreadyExists, http.StatusConflict},
		{"store duplicate", store.ErrTaskExists, http.StatusConflict},
		{"service version conflict", service.ErrConcurrentModification, http.StatusConflict},
		{"store version conflict", store.ErrConcurrentModification, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"domain validation", domain.ErrTaskTitleBlank, http.StatusBadRequest},
		{
			"domain validation through service wrapper",
			service.NewTaskServiceError("create_task", "invalid task data", domain.ErrTaskTitleBlank),
			http.StatusBadRequest,
		},
		{"wrapped sentinel", fmt.Errorf("loading: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task not found", GetSafeErrorMessage(service.ErrTaskNotFound))
	assert.Equal(t, "A task with this title already exists",
		GetSafeErrorMessage(service.ErrTaskAlreadyExists))
	assert.Equal(t, "The task was modified by another request, please retry",
		GetSafeErrorMessage(service.ErrConcurrentModification))
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
	assert.Equal(t, "Invalid task data",
		GetSafeErrorMessage(service.NewTaskServiceError(
			"create_task", "invalid task data", domain.ErrTaskTitleBlank)))

	// Internal detail must never leak through the safe message
	leaky := errors.New("pq: password authentication failed for user postgres")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'CreateTaskRequest.Title' Error:Field validation for 'Title' failed on the 'min' tag")
	assert.Equal(t, "Invalid Title: too short", SanitizeValidationError(err))

	err = errors.New(
		"Key: 'CreateTaskRequest.DueDate' Error:Field validation for 'DueDate' failed on the 'required' tag")
	assert.Equal(t, "Invalid DueDate: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
