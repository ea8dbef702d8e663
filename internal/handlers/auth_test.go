package handlers

import (
	"net/http"
	"testing"

	"github.com/mtamura/project-tracker-api/internal/dto"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/signup", "", map[string]string{
		"email":    "newuser@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	token := decode[dto.TokenDTO](t, w)
	require.Equal(t, "bearer", token.TokenType)

	claims, err := env.tokens.Validate(token.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "newuser@example.com", claims.Subject)
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "taken@example.com", "supersecret")

	w := env.do(t, http.MethodPost, "/api/signup", "", map[string]string{
		"email":    "taken@example.com",
		"password": "othersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_SignupShortPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/signup", "", map[string]string{
		"email":    "newuser@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Token(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "alice@example.com", "supersecret")

	w := env.do(t, http.MethodPost, "/api/token", "", map[string]string{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	token := decode[dto.TokenDTO](t, w)
	claims, err := env.tokens.Validate(token.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Subject)
	require.Equal(t, "user", claims.Permissions)
}

func TestAuthHandler_TokenWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.signupAndLogin(t, "alice@example.com", "supersecret")

	w := env.do(t, http.MethodPost, "/api/token", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_TokenUnknownEmail(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/token", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupTestEnv(t)
	token := env.signupAndLogin(t, "alice@example.com", "supersecret")

	w := env.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user := decode[dto.UserDTO](t, w)
	require.Equal(t, "alice@example.com", user.Email)
	require.True(t, user.IsActive)
	require.False(t, user.IsSuperuser)
}

func TestAuthHandler_GetCurrentUserNoToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
