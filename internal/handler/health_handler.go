package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guptsonu22/task-management-api/pkg/database"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db *database.PostgresDB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health returns basic health status
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task Management API is running",
	})
}

// Ready checks if the service is ready to accept traffic
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not_ready",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
	})
}
