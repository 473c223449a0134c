package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	title := "Write design doc"
	description := "Draft the design document for the next milestone."
	dueDate := time.Now().UTC().AddDate(0, 0, 1)

	task, err := NewTask(title, description, dueDate)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Title != title {
		t.Errorf("Expected title %s, got %s", title, task.Title)
	}

	if task.Description != description {
		t.Errorf("Expected description %s, got %s", description, task.Description)
	}

	if !task.DueDate.Equal(dueDate) {
		t.Errorf("Expected due date %s, got %s", dueDate, task.DueDate)
	}

	if task.Version != 0 {
		t.Errorf("Expected version 0, got %d", task.Version)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	if task.CreatedAt.After(task.UpdatedAt) {
		t.Error("Expected CreatedAt <= UpdatedAt")
	}

	// Test invalid title
	_, err = NewTask("abc", description, dueDate)
	if !errors.Is(err, ErrTaskTitleLength) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleLength, err)
	}

	// Test invalid description
	_, err = NewTask(title, "   ", dueDate)
	if !errors.Is(err, ErrTaskDescriptionBlank) {
		t.Errorf("Expected error %v, got %v", ErrTaskDescriptionBlank, err)
	}

	// Test missing due date
	_, err = NewTask(title, description, time.Time{})
	if !errors.Is(err, ErrTaskDueDateMissing) {
		t.Errorf("Expected error %v, got %v", ErrTaskDueDateMissing, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validTask := Task{
		ID:          uuid.New(),
		Title:       "Write design doc",
		Description: "Draft the design document.",
		DueDate:     time.Now().UTC().AddDate(0, 0, 1),
	}

	// Test valid task
	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidTask := validTask
	invalidTask.ID = uuid.Nil
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskIDEmpty, err)
	}

	// Test blank title
	invalidTask = validTask
	invalidTask.Title = "     "
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskTitleBlank) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleBlank, err)
	}

	// Test title below the minimum length
	invalidTask = validTask
	invalidTask.Title = "abcd"
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskTitleLength) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleLength, err)
	}

	// Test title above the maximum length
	invalidTask = validTask
	invalidTask.Title = strings.Repeat("x", TitleMaxLength+1)
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskTitleLength) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleLength, err)
	}

	// Test blank description
	invalidTask = validTask
	invalidTask.Description = ""
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskDescriptionBlank) {
		t.Errorf("Expected error %v, got %v", ErrTaskDescriptionBlank, err)
	}

	// Test negative version
	invalidTask = validTask
	invalidTask.Version = -1
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskVersionNegative) {
		t.Errorf("Expected error %v, got %v", ErrTaskVersionNegative, err)
	}
}

func TestTaskValidationErrorsWrapBase(t *testing.T) {
	t.Parallel() // Enable parallel execution
	sentinels := []error{
		ErrTaskIDEmpty,
		ErrTaskTitleBlank,
		ErrTaskTitleLength,
		ErrTaskDescriptionBlank,
		ErrTaskDueDateMissing,
		ErrTaskVersionNegative,
	}

	for _, sentinel := range sentinels {
		if !errors.Is(sentinel, ErrValidation) {
			t.Errorf("Expected %v to wrap ErrValidation", sentinel)
		}
	}
}

func TestTaskApply(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask(
		"Write design doc",
		"Draft the design document.",
		time.Now().UTC().AddDate(0, 0, 1),
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	origID := task.ID
	origCreatedAt := task.CreatedAt
	origVersion := task.Version
	newDueDate := time.Now().UTC().AddDate(0, 0, 7)

	err = task.Apply(TaskUpdate{
		Title:       "Review design doc",
		Description: "Review the final draft.",
		DueDate:     newDueDate,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID != origID {
		t.Error("Apply must not change the task ID")
	}
	if task.CreatedAt != origCreatedAt {
		t.Error("Apply must not change CreatedAt")
	}
	if task.Version != origVersion {
		t.Error("Apply must not change the version, the store bumps it")
	}
	if task.Title != "Review design doc" {
		t.Errorf("Expected replaced title, got %s", task.Title)
	}
	if !task.DueDate.Equal(newDueDate) {
		t.Errorf("Expected replaced due date, got %s", task.DueDate)
	}
}

func TestTaskApplyInvalidLeavesTaskUnchanged(t *testing.T) {
	t.Parallel() // Enable parallel execution
	task, err := NewTask(
		"Write design doc",
		"Draft the design document.",
		time.Now().UTC().AddDate(0, 0, 1),
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	origTitle := task.Title
	origDescription := task.Description
	origDueDate := task.DueDate
	origUpdatedAt := task.UpdatedAt

	err = task.Apply(TaskUpdate{
		Title:       "abc",
		Description: "Review the final draft.",
		DueDate:     task.DueDate,
	})
	if !errors.Is(err, ErrTaskTitleLength) {
		t.Fatalf("Expected error %v, got %v", ErrTaskTitleLength, err)
	}

	if task.Title != origTitle || task.Description != origDescription ||
		!task.DueDate.Equal(origDueDate) {
		t.Error("Failed Apply must leave the task unchanged")
	}
	if task.UpdatedAt != origUpdatedAt {
		t.Error("Failed Apply must not refresh UpdatedAt")
	}
}
