package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmuriuki/taskforge-api/internal/api/shared"
	"github.com/dmuriuki/taskforge-api/internal/platform/logger"
	"github.com/dmuriuki/taskforge-api/internal/redact"
	"github.com/dmuriuki/taskforge-api/internal/service"
	"github.com/dmuriuki/taskforge-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests
// Optional query parameters: title, due_date (YYYY-MM-DD), page, size.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter, page, err := parseListQuery(r)
	if err != nil {
		log.Warn("invalid list query",
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.taskService.List(r.Context(), filter, page)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list tasks"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("listed tasks",
		slog.Int("count", len(result.Tasks)),
		slog.Int64("total", result.TotalCount))
	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(result))
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	// Due date must lie strictly in the future on creation only; updates
	// are allowed to keep a date that has since passed.
	if !dueDate.After(time.Now()) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Due date must be in the future")
		return
	}

	task, err := h.taskService.Create(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create task"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("created task", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", taskID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("task_id", taskID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid due_date, expected YYYY-MM-DD")
		return
	}

	task, err := h.taskService.Update(r.Context(), taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update task"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("updated task", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests
// On success it returns the deleted task's last known state.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Delete(r.Context(), taskID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete task"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("deleted task", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// parseTaskID extracts and parses the task ID from the URL path, writing
// the error response itself when the ID is missing or malformed.
func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return uuid.Nil, false
	}

	taskID, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return uuid.Nil, false
	}

	return taskID, true
}

// parseListQuery builds the task filter and page request from query params.
func parseListQuery(r *http.Request) (store.TaskFilter, store.PageRequest, error) {
	var filter store.TaskFilter

	if title := r.URL.Query().Get("title"); title != "" {
		filter.Title = &title
	}

	if rawDate := r.URL.Query().Get("due_date"); rawDate != "" {
		dueDate, err := parseDueDate(rawDate)
		if err != nil {
			return filter, store.PageRequest{}, errInvalidDueDateParam
		}
		filter.DueDate = &dueDate
	}

	page := store.PageRequest{}
	if rawPage := r.URL.Query().Get("page"); rawPage != "" {
		number, err := strconv.Atoi(rawPage)
		if err != nil || number < 0 {
			return filter, page, errInvalidPageParam
		}
		page.Number = number
	}
	if rawSize := r.URL.Query().Get("size"); rawSize != "" {
		size, err := strconv.Atoi(rawSize)
		if err != nil || size <= 0 {
			return filter, page, errInvalidSizeParam
		}
		page.Size = size
	}

	return filter, page.Normalize(), nil
}
