package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mtamura/project-tracker-api/internal/dto"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_RequiresSuperuser(t *testing.T) {
	env := setupTestEnv(t)
	token := env.signupAndLogin(t, "plain@example.com", "supersecret")

	w := env.do(t, http.MethodGet, "/api/v1/users", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_ListUsers(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "first@example.com", "supersecret")
	admin := env.superuserToken(t, "root@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	users := decode[[]dto.UserDTO](t, w)
	require.Len(t, users, 2)
	require.Equal(t, "first@example.com", users[0].Email, "insertion order")
}

func TestUserHandler_CreateUser(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.superuserToken(t, "root@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/users", admin, map[string]interface{}{
		"email":      "bob@example.com",
		"password":   "supersecret",
		"first_name": "Bob",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode[dto.UserDTO](t, w)
	require.Equal(t, "bob@example.com", created.Email)
	require.Equal(t, "Bob", created.FirstName)
	require.True(t, created.IsActive)
	require.False(t, created.IsSuperuser)
}

func TestUserHandler_CreateDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.superuserToken(t, "root@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/users", admin, map[string]interface{}{
		"email":    "root@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_UpdateUserFlags(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "bob@example.com", "supersecret")
	admin := env.superuserToken(t, "root@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]dto.UserDTO](t, w)
	bobID := users[0].ID

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", bobID), admin, map[string]interface{}{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	updated := decode[dto.UserDTO](t, w)
	require.False(t, updated.IsActive)
	require.Equal(t, "bob@example.com", updated.Email, "omitted fields keep their values")

	// The disabled account is now rejected by the active gate.
	bobToken, err := env.tokens.Issue("bob@example.com", "user", 0)
	require.NoError(t, err)
	w = env.do(t, http.MethodGet, "/api/v1/users/me", bobToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_UpdatePasswordRehashes(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "bob@example.com", "supersecret")
	admin := env.superuserToken(t, "root@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/users", admin, nil)
	users := decode[[]dto.UserDTO](t, w)
	bobID := users[0].ID

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", bobID), admin, map[string]interface{}{
		"password": "a-new-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works, new one does.
	w = env.do(t, http.MethodPost, "/api/token", "", map[string]string{
		"email":    "bob@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/token", "", map[string]string{
		"email":    "bob@example.com",
		"password": "a-new-password",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "bob@example.com", "supersecret")
	admin := env.superuserToken(t, "root@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/users", admin, nil)
	users := decode[[]dto.UserDTO](t, w)
	bobID := users[0].ID

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", bobID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	deleted := decode[dto.UserDTO](t, w)
	require.Equal(t, "bob@example.com", deleted.Email)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", bobID), admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_GetMissing(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.superuserToken(t, "root@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/users/4242", admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
