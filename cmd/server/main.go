package main

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/mtamura/project-tracker-api/internal/config"
	"github.com/mtamura/project-tracker-api/internal/database"
	"github.com/mtamura/project-tracker-api/internal/handlers"
	"github.com/mtamura/project-tracker-api/internal/logger"
	"github.com/mtamura/project-tracker-api/internal/middleware"
	"github.com/mtamura/project-tracker-api/internal/repository"
	"github.com/mtamura/project-tracker-api/internal/secrets"
	"github.com/mtamura/project-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New("server")

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Msg("database connection established")

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("failed to add indexes")
	}
	log.Info().Msg("database migrations completed")

	// Resolve the token signing secret. A process that cannot resolve it
	// must not start: there is no default secret to fall back to.
	secretStore := secrets.NewCached(secrets.NewEnvStore())
	tokenService, err := services.NewTokenService(context.Background(), secretStore, cfg.SecretKeyName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token service")
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	if err := seedFirstSuperuser(cfg, userService); err != nil {
		log.Fatal().Err(err).Msg("failed to seed first superuser")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokenService, userRepo)
	requireActive := middleware.RequireActiveUser()
	requireSuperuser := middleware.RequireSuperuser()

	// Auth routes (public)
	api := r.Group("/api")
	{
		api.POST("/signup", authHandler.Signup)
		api.POST("/token", authHandler.Token)
	}

	v1 := api.Group("/v1")
	v1.Use(requireAuth, requireActive)
	{
		v1.GET("/users/me", authHandler.GetCurrentUser)

		// User administration (superuser only)
		users := v1.Group("/users")
		users.Use(requireSuperuser)
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Project routes
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Task routes
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Info().Str("addr", cfg.ListenAddr).Msg("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// seedFirstSuperuser creates the bootstrap admin account when configured
// and not already present.
func seedFirstSuperuser(cfg *config.Config, userService *services.UserService) error {
	if cfg.FirstSuperuser == "" || cfg.FirstPassword == "" {
		return nil
	}

	_, err := userService.CreateUser(services.CreateUserInput{
		Email:       cfg.FirstSuperuser,
		Password:    cfg.FirstPassword,
		IsActive:    true,
		IsSuperuser: true,
	})
	if errors.Is(err, services.ErrEmailTaken) {
		return nil
	}
	return err
}
