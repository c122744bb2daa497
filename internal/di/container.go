package di

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Guptsonu22/task-management-api/internal/handler"
	"github.com/Guptsonu22/task-management-api/internal/metrics"
	"github.com/Guptsonu22/task-management-api/internal/repository"
	"github.com/Guptsonu22/task-management-api/internal/service"
	"github.com/Guptsonu22/task-management-api/internal/token"
	"github.com/Guptsonu22/task-management-api/pkg/database"
)

// Container holds all dependencies for the API
type Container struct {
	// Infrastructure
	DB       *database.PostgresDB
	Tokens   *token.Manager
	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	// Repositories
	UserRepo  repository.UserRepository
	TokenRepo repository.RefreshTokenRepository
	TaskRepo  repository.TaskRepository

	// Services
	AuthService service.AuthService
	TaskService service.TaskService

	// Handlers
	HealthHandler *handler.HealthHandler
	AuthHandler   *handler.AuthHandler
	TaskHandler   *handler.TaskHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB          *database.PostgresDB
	TokenConfig *token.Config
}

// NewContainer wires repositories, services, and handlers together
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:       cfg.DB,
		Tokens:   token.NewManager(cfg.TokenConfig),
		Registry: prometheus.NewRegistry(),
	}

	c.Metrics = metrics.NewCollector(c.Registry)

	pool := c.DB.Pool()
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.TokenRepo = repository.NewPostgresRefreshTokenRepository(pool)
	c.TaskRepo = repository.NewPostgresTaskRepository(pool)

	c.AuthService = service.NewAuthService(c.UserRepo, c.TokenRepo, c.Tokens)
	c.TaskService = service.NewTaskService(c.TaskRepo)

	c.HealthHandler = handler.NewHealthHandler(c.DB)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.TaskHandler = handler.NewTaskHandler(c.TaskService)

	return c
}
