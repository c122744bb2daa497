package repository

import (
	"context"

	"github.com/Guptsonu22/task-management-api/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID, (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by lowercased email, (nil, nil) when absent
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository is the server-side session store: the single source
// of truth for whether a refresh token is still valid.
type RefreshTokenRepository interface {
	// Create persists a newly issued refresh token
	Create(ctx context.Context, token *domain.RefreshToken) error
	// GetByToken retrieves a stored token row, (nil, nil) when absent
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	// Consume deletes the row for token and reports whether this caller
	// removed it. Exactly one of any set of concurrent callers gets true.
	Consume(ctx context.Context, token string) (bool, error)
	// DeleteByToken removes the row if present (idempotent logout)
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired removes all rows past their expiry
	DeleteExpired(ctx context.Context) error
}

// TaskFilter narrows a task listing. UserID is always set; the remaining
// fields are optional and AND-ed together.
type TaskFilter struct {
	UserID    string
	Status    domain.TaskStatus
	Priority  domain.TaskPriority
	Search    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *domain.Task) error
	// GetByID retrieves a task by ID regardless of owner, (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// Update persists all mutable fields of the task
	Update(ctx context.Context, task *domain.Task) error
	// Delete deletes a task
	Delete(ctx context.Context, id string) error
	// List returns one page of tasks matching the filter plus the total
	// number of matching rows, both computed from the same predicate.
	List(ctx context.Context, filter *TaskFilter) ([]*domain.Task, int, error)
}
