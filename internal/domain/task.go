package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors. Every sentinel wraps ErrValidation so
// callers can match the whole class with a single errors.Is check.
var (
	// ErrValidation is the base error for all task validation failures.
	ErrValidation = errors.New("invalid task data")

	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)

	// ErrTaskTitleBlank is returned when a task's title is empty or whitespace.
	ErrTaskTitleBlank = fmt.Errorf("%w: task title cannot be blank", ErrValidation)

	// ErrTaskTitleLength is returned when a task's title is outside the
	// allowed 5-100 character range.
	ErrTaskTitleLength = fmt.Errorf("%w: task title must be between 5 and 100 characters", ErrValidation)

	// ErrTaskDescriptionBlank is returned when a task's description is empty or whitespace.
	ErrTaskDescriptionBlank = fmt.Errorf("%w: task description cannot be blank", ErrValidation)

	// ErrTaskDueDateMissing is returned when a task has no due date.
	ErrTaskDueDateMissing = fmt.Errorf("%w: task due date is required", ErrValidation)

	// ErrTaskVersionNegative is returned when a task's version is below zero.
	ErrTaskVersionNegative = fmt.Errorf("%w: task version cannot be negative", ErrValidation)
)

// Title length bounds enforced by Validate.
const (
	TitleMinLength = 5
	TitleMaxLength = 100
)

// Task represents a unit of work tracked by the API. The Version field
// carries the optimistic-concurrency token: the store refuses any write
// whose expected version no longer matches the stored row.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// TaskUpdate carries the replacement field values for an update.
// Every field is replaced wholesale; identity, creation time and version
// are preserved from the existing record.
type TaskUpdate struct {
	Title       string
	Description string
	DueDate     time.Time
}

// NewTask creates a new Task with the given title, description and due date.
// It generates a new UUID for the task ID, sets both timestamps to now and
// starts the version at 0. Returns an error if validation fails.
func NewTask(title, description string, dueDate time.Time) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     0,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	trimmed := strings.TrimSpace(t.Title)
	if trimmed == "" {
		return ErrTaskTitleBlank
	}
	if len(t.Title) < TitleMinLength || len(t.Title) > TitleMaxLength {
		return ErrTaskTitleLength
	}

	if strings.TrimSpace(t.Description) == "" {
		return ErrTaskDescriptionBlank
	}

	if t.DueDate.IsZero() {
		return ErrTaskDueDateMissing
	}

	if t.Version < 0 {
		return ErrTaskVersionNegative
	}

	return nil
}

// Apply replaces the task's title, description and due date from the update
// and refreshes the UpdatedAt timestamp. ID, CreatedAt and Version are kept
// so the store can perform its version check on the subsequent write.
// Returns an error if the resulting task is invalid; the receiver is left
// unchanged in that case.
func (t *Task) Apply(update TaskUpdate) error {
	origTitle := t.Title
	origDescription := t.Description
	origDueDate := t.DueDate

	t.Title = update.Title
	t.Description = update.Description
	t.DueDate = update.DueDate

	if err := t.Validate(); err != nil {
		t.Title = origTitle
		t.Description = origDescription
		t.DueDate = origDueDate
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}
