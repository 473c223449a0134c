package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/google/uuid"
)

// Pagination bounds applied by PageRequest.Normalize.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPageNumber caps the page number so Offset stays far below int
	// overflow even at MaxPageSize. Pages past the data are valid queries
	// and simply come back empty.
	MaxPageNumber = 10_000_000
)

// TaskFilter holds the optional criteria for a task list query. A nil field
// means the criterion is not applied; set fields are combined with AND.
// The zero value matches all tasks.
type TaskFilter struct {
	Title   *string
	DueDate *time.Time
}

// IsZero reports whether no filter criteria are set.
func (f TaskFilter) IsZero() bool {
	return f.Title == nil && f.DueDate == nil
}

// PageRequest identifies one page of a list query. Number is 0-based.
type PageRequest struct {
	Number int
	Size   int
}

// Normalize returns a copy with the page number and size clamped to sane
// bounds, applying the default size when none was requested.
func (p PageRequest) Normalize() PageRequest {
	if p.Number < 0 {
		p.Number = 0
	}
	if p.Number > MaxPageNumber {
		p.Number = MaxPageNumber
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the row offset of the page's first item.
func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store. The task must already carry its
	// generated ID, timestamps and version 0.
	// Returns ErrTaskExists if the title is already taken.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByTitle retrieves a task by its exact title. It exists to support
	// the pre-create uniqueness check.
	// Returns ErrTaskNotFound if no task has the title.
	GetByTitle(ctx context.Context, title string) (*domain.Task, error)

	// List returns one page of tasks matching the filter, in stable
	// insertion order, together with the total matching count.
	List(ctx context.Context, filter TaskFilter, page PageRequest) ([]*domain.Task, int64, error)

	// Update writes the task's title, description, due date and updated-at
	// timestamp, conditional on task.Version still matching the stored row.
	// On success the stored version is bumped by one and task.Version is
	// refreshed to the new value.
	// Returns ErrConcurrentModification if the version check fails,
	// ErrTaskNotFound if the row no longer exists, and ErrTaskExists if the
	// new title collides with another task.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task row matching both id and version, so a task
	// changed underneath the caller is not silently deleted.
	// Returns ErrConcurrentModification if the row exists at a different
	// version, ErrTaskNotFound if it is gone.
	Delete(ctx context.Context, id uuid.UUID, version int) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store, hashing the plaintext password.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by their email address. The returned user
	// carries the password hash for credential verification.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
