package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/platform/logger"
	"github.com/dmuriuki/taskforge-api/internal/store"
	"github.com/google/uuid"
)

// Common sentinel errors for TaskService
var (
	// ErrTaskNotFound indicates that the task does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskAlreadyExists indicates a create with an already-used title
	ErrTaskAlreadyExists = errors.New("task with this title already exists")

	// ErrConcurrentModification indicates a write lost a version race and
	// had no effect. The caller may retry with fresh state; the service
	// never retries on its own.
	ErrConcurrentModification = errors.New("task was modified concurrently")
)

// CreateTaskInput carries the validated fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
}

// UpdateTaskInput carries the replacement fields for an update. All fields
// are replaced wholesale.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
}

// TaskPage is one page of task results with pagination metadata.
type TaskPage struct {
	Tasks      []*domain.Task
	PageNumber int
	PageSize   int
	TotalCount int64
	TotalPages int
}

// TaskService provides the task workflow: filtered paginated listing with
// response caching, and create/update/delete with uniqueness and existence
// checks plus coarse cache invalidation.
type TaskService interface {
	// List returns one page of tasks matching the filter. Identical calls
	// within the cache TTL are served from the response cache unless a
	// mutation invalidated it in between.
	List(ctx context.Context, filter store.TaskFilter, page store.PageRequest) (*TaskPage, error)

	// Create validates title uniqueness and persists a new task.
	// Returns ErrTaskAlreadyExists if the title is taken.
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// Update replaces the task's fields under the store's optimistic
	// version check. Returns ErrTaskNotFound or ErrConcurrentModification.
	Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// Delete removes the task and returns its last known state.
	// Returns ErrTaskNotFound or ErrConcurrentModification.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "list_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Store-level sentinels are mapped to their service-level equivalents and
// returned directly without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrTaskAlreadyExists),
		errors.Is(err, ErrConcurrentModification):
		return err
	case errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, store.ErrTaskExists):
		return ErrTaskAlreadyExists
	case errors.Is(err, store.ErrConcurrentModification):
		return ErrConcurrentModification
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	cache     store.TaskPageCache
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
// cache may be nil to run without a response cache.
func NewTaskService(
	taskStore store.TaskStore,
	cache store.TaskPageCache,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}
	if logger == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "logger cannot be nil",
		}
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		cache:     cache,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageRequest,
) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	if s.cache != nil {
		cached, err := s.cache.GetPage(ctx, filter, page)
		if err == nil {
			return buildTaskPage(cached.Tasks, cached.Total, page), nil
		}
		if !errors.Is(err, store.ErrCacheMiss) {
			// An unreachable cache never fails the request
			log.Warn("response cache unavailable, falling through to store",
				slog.String("error", err.Error()))
		}
	}

	tasks, total, err := s.taskStore.List(ctx, filter, page)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	if s.cache != nil {
		if err := s.cache.SetPage(ctx, filter, page, &store.TaskPage{
			Tasks: tasks,
			Total: total,
		}); err != nil {
			log.Warn("failed to populate response cache",
				slog.String("error", err.Error()))
		}
	}

	return buildTaskPage(tasks, total, page), nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(
	ctx context.Context,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Uniqueness is a workflow rule; the store's unique constraint is the
	// backstop for races between concurrent creates.
	_, err := s.taskStore.GetByTitle(ctx, input.Title)
	if err == nil {
		log.Debug("create rejected, title already in use")
		return nil, ErrTaskAlreadyExists
	}
	if !errors.Is(err, store.ErrTaskNotFound) {
		return nil, NewTaskServiceError("create_task", "uniqueness check failed", err)
	}

	task, err := domain.NewTask(input.Title, input.Description, input.DueDate)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "invalid task data", err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("create_task", "failed to persist task", err)
	}

	s.invalidateCache(ctx)

	log.Info("task created",
		slog.String("task_id", task.ID.String()))
	return task, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to load task", err)
	}

	if err := task.Apply(domain.TaskUpdate{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}); err != nil {
		return nil, NewTaskServiceError("update_task", "invalid task data", err)
	}

	// The store performs the version check and bump
	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, NewTaskServiceError("update_task", "failed to persist task", err)
	}

	s.invalidateCache(ctx)

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.Int("version", task.Version))
	return task, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("delete_task", "failed to load task", err)
	}

	if err := s.taskStore.Delete(ctx, task.ID, task.Version); err != nil {
		return nil, NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.invalidateCache(ctx)

	log.Info("task deleted",
		slog.String("task_id", task.ID.String()))

	// Return the last known state, not a re-read
	return task, nil
}

// invalidateCache retires every cached list page after a successful
// mutation. Cache failures are logged and swallowed: the mutation already
// happened and stale entries expire via TTL anyway.
func (s *taskServiceImpl) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Warn("failed to invalidate response cache",
			slog.String("error", err.Error()))
	}
}

// buildTaskPage assembles pagination metadata around one page of results.
func buildTaskPage(tasks []*domain.Task, total int64, page store.PageRequest) *TaskPage {
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return &TaskPage{
		Tasks:      tasks,
		PageNumber: page.Number,
		PageSize:   page.Size,
		TotalCount: total,
		TotalPages: totalPages,
	}
}
