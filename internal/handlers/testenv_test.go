package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mtamura/project-tracker-api/internal/middleware"
	"github.com/mtamura/project-tracker-api/internal/models"
	"github.com/mtamura/project-tracker-api/internal/repository"
	"github.com/mtamura/project-tracker-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *services.TokenService
	authService *services.AuthService
	userService *services.UserService
}

// setupTestEnv wires the full route tree against an in-memory database,
// mirroring the production router in cmd/server.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := services.NewTokenServiceWithKey([]byte("handler-test-key"))
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/signup", authHandler.Signup)
	api.POST("/token", authHandler.Token)

	v1 := api.Group("/v1")
	v1.Use(middleware.RequireAuth(tokens, userRepo), middleware.RequireActiveUser())
	v1.GET("/users/me", authHandler.GetCurrentUser)

	users := v1.Group("/users", middleware.RequireSuperuser())
	users.GET("", userHandler.ListUsers)
	users.POST("", userHandler.CreateUser)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	projects := v1.Group("/projects")
	projects.GET("", projectHandler.ListProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	tasks := v1.Group("/tasks")
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	return testEnv{
		db:          db,
		router:      r,
		tokens:      tokens,
		authService: authService,
		userService: userService,
	}
}

// signupAndLogin registers a user and returns a valid bearer token.
func (env testEnv) signupAndLogin(t *testing.T, email, password string) string {
	t.Helper()

	_, err := env.authService.Signup(services.SignupInput{Email: email, Password: password})
	require.NoError(t, err)

	token, err := env.authService.IssueToken(services.LoginInput{Email: email, Password: password}, 0)
	require.NoError(t, err)
	return token
}

// superuserToken creates a superuser and returns a token for it.
func (env testEnv) superuserToken(t *testing.T, email string) string {
	t.Helper()

	_, err := env.userService.CreateUser(services.CreateUserInput{
		Email:       email,
		Password:    "supersecret",
		IsActive:    true,
		IsSuperuser: true,
	})
	require.NoError(t, err)

	token, err := env.authService.IssueToken(services.LoginInput{Email: email, Password: "supersecret"}, 0)
	require.NoError(t, err)
	return token
}

// do performs a JSON request with an optional bearer token.
func (env testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
