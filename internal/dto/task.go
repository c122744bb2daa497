package dto

import (
	"fmt"
	"time"

	"github.com/Guptsonu22/task-management-api/internal/domain"
	"github.com/Guptsonu22/task-management-api/internal/validation"
)

// CreateTaskRequest represents the request to create a new task
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// Validate validates the CreateTaskRequest
func (r *CreateTaskRequest) Validate() (bool, string) {
	if ok, msg := validation.TaskTitle(r.Title); !ok {
		return false, msg
	}
	if r.Status != "" && !domain.TaskStatus(r.Status).Valid() {
		return false, invalidStatusMessage
	}
	if r.Priority != "" && !domain.TaskPriority(r.Priority).Valid() {
		return false, invalidPriorityMessage
	}
	return true, ""
}

// UpdateTaskRequest represents a partial task update. Optional fields
// distinguish omitted keys from explicit nulls so a null clears the column.
type UpdateTaskRequest struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Status      Optional[string]    `json:"status"`
	Priority    Optional[string]    `json:"priority"`
	DueDate     Optional[time.Time] `json:"dueDate"`
}

// Validate validates the UpdateTaskRequest
func (r *UpdateTaskRequest) Validate() (bool, string) {
	if r.Title.Set {
		if !r.Title.Valid {
			return false, "Task title is required"
		}
		if ok, msg := validation.TaskTitle(r.Title.Value); !ok {
			return false, msg
		}
	}
	if r.Status.Set && (!r.Status.Valid || !domain.TaskStatus(r.Status.Value).Valid()) {
		return false, invalidStatusMessage
	}
	if r.Priority.Set && (!r.Priority.Valid || !domain.TaskPriority(r.Priority.Value).Valid()) {
		return false, invalidPriorityMessage
	}
	return true, ""
}

var (
	invalidStatusMessage = fmt.Sprintf("Invalid status. Must be %s, %s, or %s",
		domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted)
	invalidPriorityMessage = fmt.Sprintf("Invalid priority. Must be %s, %s, or %s",
		domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh)
)

// TaskListQuery holds the task listing query parameters
type TaskListQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Status    string `form:"status"`
	Priority  string `form:"priority"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// SetDefaults applies the default page and limit
func (q *TaskListQuery) SetDefaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
}

// Validate validates the TaskListQuery filters
func (q *TaskListQuery) Validate() (bool, string) {
	if q.Status != "" && !domain.TaskStatus(q.Status).Valid() {
		return false, invalidStatusMessage
	}
	if q.Priority != "" && !domain.TaskPriority(q.Priority).Valid() {
		return false, invalidPriorityMessage
	}
	return true, ""
}

// PageMeta describes one page of a filtered listing
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
