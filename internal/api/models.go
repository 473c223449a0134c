package api

import (
	"time"

	"github.com/dmuriuki/taskforge-api/internal/domain"
	"github.com/dmuriuki/taskforge-api/internal/service"
)

// dateLayout is the wire format for due dates.
const dateLayout = "2006-01-02"

// CreateTaskRequest is the request body for POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=100"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"due_date" validate:"required"`
}

// UpdateTaskRequest is the request body for PUT /tasks/{id}.
// Unlike create, the due date is not required to lie in the future.
type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=100"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"due_date" validate:"required"`
}

// TaskResponse is the public projection of a task. Audit timestamps and the
// optimistic version are deliberately omitted from the wire shape.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// TaskPageResponse is one page of task projections with pagination metadata.
type TaskPageResponse struct {
	Items      []TaskResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

// taskToResponse converts a domain.Task to its public projection.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate.Format(dateLayout),
	}
}

// pageToResponse converts a service.TaskPage to its wire shape.
func pageToResponse(page *service.TaskPage) TaskPageResponse {
	items := make([]TaskResponse, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		items = append(items, taskToResponse(task))
	}

	return TaskPageResponse{
		Items:      items,
		Page:       page.PageNumber,
		Size:       page.PageSize,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}
}

// parseDueDate parses the wire-format due date.
func parseDueDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
