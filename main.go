package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Guptsonu22/task-management-api/internal/di"
	"github.com/Guptsonu22/task-management-api/internal/metrics"
	"github.com/Guptsonu22/task-management-api/internal/middleware"
	"github.com/Guptsonu22/task-management-api/internal/token"
	"github.com/Guptsonu22/task-management-api/pkg/config"
	"github.com/Guptsonu22/task-management-api/pkg/database"
	"github.com/Guptsonu22/task-management-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(&logger.Config{
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Task Management API...")

	ctx := context.Background()

	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   1 * time.Second,
		EnableTracing:   cfg.Database.EnableTracing,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	if err := database.RunMigrations(cfg.Database.URL()); err != nil {
		appLog.Fatal(fmt.Sprintf("Migrations failed: %v", err))
	}
	appLog.Info("Migrations applied")

	container := di.NewContainer(&di.ContainerConfig{
		DB: db,
		TokenConfig: &token.Config{
			AccessSecret:  cfg.JWT.AccessSecret,
			RefreshSecret: cfg.JWT.RefreshSecret,
			AccessExpiry:  cfg.JWT.AccessExpiry,
			RefreshExpiry: cfg.JWT.RefreshExpiry,
		},
	})

	if err := container.AuthService.PurgeExpired(ctx); err != nil {
		appLog.Warn(fmt.Sprintf("Expired session sweep failed: %v", err))
	}

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.Metrics(container.Metrics))
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	router.Use(middleware.CORSWithConfig(corsCfg))

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)
	router.GET("/metrics", gin.WrapH(metrics.Handler(container.Registry)))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", container.AuthHandler.Register)
			auth.POST("/login", container.AuthHandler.Login)
			auth.POST("/refresh", container.AuthHandler.Refresh)
			auth.POST("/logout", container.AuthHandler.Logout)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.Auth(container.Tokens))
		{
			tasks.GET("", container.TaskHandler.List)
			tasks.POST("", container.TaskHandler.Create)
			tasks.GET("/:id", container.TaskHandler.GetByID)
			tasks.PATCH("/:id", container.TaskHandler.Update)
			tasks.DELETE("/:id", container.TaskHandler.Delete)
			tasks.PATCH("/:id/toggle", container.TaskHandler.Toggle)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		appLog.Info(fmt.Sprintf("Task Management API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
