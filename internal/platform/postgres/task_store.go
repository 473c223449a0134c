package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/platform/logger"
	"github.com/dmuriuki/taskforge-api/internal/store"
	"github.com/google/uuid"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrTaskExists if the title unique constraint is violated.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, title, description, due_date, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
		task.Version,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate title during task creation",
				slog.String("task_id", task.ID.String()))
			return store.ErrTaskExists
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves a task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.String("task_id", id.String()))

	query := `
		SELECT id, title, description, due_date, created_at, updated_at, version
		FROM tasks
		WHERE id = $1
	`

	task, err := s.scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// GetByTitle implements store.TaskStore.GetByTitle
// It retrieves a task by its exact title, supporting the pre-create
// uniqueness check. Returns store.ErrTaskNotFound if no task matches.
func (s *PostgresTaskStore) GetByTitle(ctx context.Context, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, due_date, created_at, updated_at, version
		FROM tasks
		WHERE title = $1
	`

	task, err := s.scanTask(s.db.QueryRowContext(ctx, query, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by title",
			slog.String("error", err.Error()))
		return nil, err
	}

	return task, nil
}

// List implements store.TaskStore.List
// It returns one page of tasks matching the filter in insertion order,
// together with the total matching count for pagination metadata.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageRequest,
) ([]*domain.Task, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	where, args := buildTaskPredicate(filter, 1)

	countQuery := "SELECT COUNT(*) FROM tasks"
	if where != "" {
		countQuery += " " + where
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()))
		return nil, 0, err
	}

	listQuery := `
		SELECT id, title, description, due_date, created_at, updated_at, version
		FROM tasks
	`
	if where != "" {
		listQuery += where + "\n"
	}
	listQuery += fmt.Sprintf(
		"ORDER BY created_at, id LIMIT $%d OFFSET $%d",
		len(args)+1,
		len(args)+2,
	)
	listArgs := append(append([]any{}, args...), page.Size, page.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.DueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.Version,
		)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, 0, err
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, 0, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks",
		slog.Int("count", len(tasks)),
		slog.Int64("total", total),
		slog.Int("page", page.Number),
		slog.Int("size", page.Size))
	return tasks, total, nil
}

// Update implements store.TaskStore.Update
// The UPDATE statement carries the optimistic-concurrency check: the row is
// only written when its stored version still equals task.Version, and the
// version is bumped in the same statement. Zero affected rows means the
// caller lost a version race (or the task is gone).
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	updatedAt := time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, updated_at = $4, version = version + 1
		WHERE id = $5 AND version = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.DueDate,
		updatedAt,
		task.ID,
		task.Version,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate title during task update",
				slog.String("task_id", task.ID.String()))
			return store.ErrTaskExists
		}

		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		return s.classifyMissedWrite(ctx, task.ID, task.Version)
	}

	task.UpdatedAt = updatedAt
	task.Version++

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.Int("version", task.Version))
	return nil
}

// Delete implements store.TaskStore.Delete
// The DELETE statement is conditioned on both id and version so a task
// changed underneath the caller is not silently removed.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID, version int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND version = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, version)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		return s.classifyMissedWrite(ctx, id, version)
	}

	log.Info("task deleted successfully",
		slog.String("task_id", id.String()))
	return nil
}

// classifyMissedWrite distinguishes a lost version race from a vanished row
// after a conditional write affected zero rows.
func (s *PostgresTaskStore) classifyMissedWrite(
	ctx context.Context,
	id uuid.UUID,
	expectedVersion int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var storedVersion int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM tasks WHERE id = $1`, id).
		Scan(&storedVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for conditional write",
				slog.String("task_id", id.String()))
			return store.ErrTaskNotFound
		}
		log.Error("failed to inspect task after missed write",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	log.Warn("optimistic lock conflict",
		slog.String("task_id", id.String()),
		slog.Int("expected_version", expectedVersion),
		slog.Int("stored_version", storedVersion))
	return store.ErrConcurrentModification
}

// scanTask scans a single task row.
func (s *PostgresTaskStore) scanTask(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Version,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
