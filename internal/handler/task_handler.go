package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Guptsonu22/task-management-api/internal/dto"
	"github.com/Guptsonu22/task-management-api/internal/middleware"
	"github.com/Guptsonu22/task-management-api/internal/service"
	"github.com/Guptsonu22/task-management-api/pkg/response"
)

// TaskHandler handles task HTTP requests. Every route sits behind the auth
// middleware, so the user ID is always present in the context.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create handles task creation
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Access token is required")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, "Task created successfully", task)
}

// List handles the filtered, paginated task listing
// GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Access token is required")
		return
	}

	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	tasks, meta, err := h.taskService.List(c.Request.Context(), userID, &query)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Paginated(c, "Tasks retrieved successfully", tasks, meta)
}

// GetByID handles fetching one task
// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Access token is required")
		return
	}

	task, err := h.taskService.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, "Task retrieved successfully", task)
}

// Update handles a partial task update
// PATCH /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Access token is required")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, "Task updated successfully", task)
}

// Delete handles task deletion
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Access token is required")
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, "Task deleted successfully", nil)
}

// Toggle advances the task status one step around the ring
// PATCH /api/tasks/:id/toggle
func (h *TaskHandler) Toggle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Access token is required")
		return
	}

	task, err := h.taskService.Toggle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, "Task status toggled successfully", task)
}
