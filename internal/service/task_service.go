package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Guptsonu22/task-management-api/internal/domain"
	"github.com/Guptsonu22/task-management-api/internal/dto"
	"github.com/Guptsonu22/task-management-api/internal/repository"
)

// TaskService defines the interface for task operations. Every operation is
// scoped to the requesting user.
type TaskService interface {
	// Create creates a task owned by userID
	Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*domain.Task, error)
	// List returns one page of the user's tasks matching the query
	List(ctx context.Context, userID string, query *dto.TaskListQuery) ([]*domain.Task, *dto.PageMeta, error)
	// GetByID returns the task after the ownership check
	GetByID(ctx context.Context, userID, taskID string) (*domain.Task, error)
	// Update applies a partial update after the ownership check
	Update(ctx context.Context, userID, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error)
	// Delete removes the task after the ownership check
	Delete(ctx context.Context, userID, taskID string) error
	// Toggle advances the task status one step around the ring
	Toggle(ctx context.Context, userID, taskID string) (*domain.Task, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

// Create creates a task owned by userID
func (s *taskService) Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*domain.Task, error) {
	if ok, msg := req.Validate(); !ok {
		return nil, domain.Validation(msg)
	}

	status := domain.StatusPending
	if req.Status != "" {
		status = domain.TaskStatus(req.Status)
	}
	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
	}

	now := time.Now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: trimOrNil(req.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns one page of the user's tasks matching the query
func (s *taskService) List(ctx context.Context, userID string, query *dto.TaskListQuery) ([]*domain.Task, *dto.PageMeta, error) {
	if ok, msg := query.Validate(); !ok {
		return nil, nil, domain.Validation(msg)
	}
	query.SetDefaults()

	filter := &repository.TaskFilter{
		UserID:    userID,
		Status:    domain.TaskStatus(query.Status),
		Priority:  domain.TaskPriority(query.Priority),
		Search:    query.Search,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Limit:     query.Limit,
		Offset:    (query.Page - 1) * query.Limit,
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	meta := &dto.PageMeta{
		Page:       query.Page,
		Limit:      query.Limit,
		Total:      total,
		TotalPages: (total + query.Limit - 1) / query.Limit,
	}
	return tasks, meta, nil
}

// GetByID returns the task after the ownership check. A missing row is
// NotFound; a row owned by someone else is Forbidden. The distinction is
// deliberate and shared by update, delete, and toggle.
func (s *taskService) GetByID(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskForbidden
	}
	return task, nil
}

// Update applies a partial update: omitted fields keep their value, explicit
// nulls clear description and due date.
func (s *taskService) Update(ctx context.Context, userID, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if ok, msg := req.Validate(); !ok {
		return nil, domain.Validation(msg)
	}

	if req.Title.Set {
		task.Title = strings.TrimSpace(req.Title.Value)
	}
	if req.Description.Set {
		if req.Description.Valid {
			task.Description = trimOrNil(&req.Description.Value)
		} else {
			task.Description = nil
		}
	}
	if req.Status.Set {
		task.Status = domain.TaskStatus(req.Status.Value)
	}
	if req.Priority.Set {
		task.Priority = domain.TaskPriority(req.Priority.Value)
	}
	if req.DueDate.Set {
		if req.DueDate.Valid {
			due := req.DueDate.Value
			task.DueDate = &due
		} else {
			task.DueDate = nil
		}
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task after the ownership check
func (s *taskService) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := s.GetByID(ctx, userID, taskID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, taskID)
}

// Toggle advances the task status one step: PENDING -> IN_PROGRESS ->
// COMPLETED -> PENDING.
func (s *taskService) Toggle(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Status = task.Status.Next()
	task.UpdatedAt = time.Now()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// trimOrNil trims the description and maps empty strings to nil.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
