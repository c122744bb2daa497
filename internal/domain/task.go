package domain

import "time"

// TaskStatus is the closed set of task states.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Next returns the status one step around the toggle ring:
// PENDING -> IN_PROGRESS -> COMPLETED -> PENDING.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	case StatusCompleted:
		return StatusPending
	}
	return StatusPending
}

// TaskPriority is the closed set of task priorities.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one user. Every read and mutation
// goes through an ownership check against UserID.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate"`
	UserID      string       `json:"userId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
