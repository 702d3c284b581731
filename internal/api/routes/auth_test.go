package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"emsys/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestAuthRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := services.NewAuthService(cfg)
	router := setupTestRouter(cfg)

	t.Run("POST /api/auth/register - Success", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/register", "", map[string]interface{}{
			"username":  "operator1",
			"email":     "operator1@test.local",
			"password":  "secret123",
			"role":      "operator",
			"full_name": "Operator One",
		})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("POST /api/auth/register - Duplicate username", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/register", "", map[string]interface{}{
			"username": "operator1",
			"email":    "other@test.local",
			"password": "secret123",
			"role":     "operator",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /api/auth/register - Duplicate email", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/register", "", map[string]interface{}{
			"username": "operator2",
			"email":    "operator1@test.local",
			"password": "secret123",
			"role":     "operator",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /api/auth/register - Invalid role", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/register", "", map[string]interface{}{
			"username": "operator3",
			"email":    "operator3@test.local",
			"password": "secret123",
			"role":     "superuser",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /api/auth/login - Success", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/login", "", map[string]interface{}{
			"username": "operator1",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.NotEmpty(t, response["access_token"])
		assert.Equal(t, "bearer", response["token_type"])

		user := response["user"].(map[string]interface{})
		assert.Equal(t, "operator1", user["username"])
		assert.Equal(t, "operator", user["role"])
	})

	t.Run("POST /api/auth/login - Wrong password", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/login", "", map[string]interface{}{
			"username": "operator1",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("POST /api/auth/login - Unknown user", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/login", "", map[string]interface{}{
			"username": "ghost",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GET /api/auth/me - Success", func(t *testing.T) {
		user, err := authService.Authenticate("operator1", "secret123")
		assert.NoError(t, err)
		token := createTestToken(t, authService, user)

		w := doJSON(router, "GET", "/api/auth/me", token, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		err = json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "operator1", response["username"])
	})

	t.Run("GET /api/auth/me - No token", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GET /api/auth/me - Garbage token", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/auth/me", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GET /api/auth/me - Deleted user token rejected", func(t *testing.T) {
		user := createTestUser(t, authService, "ephemeral", "secret123", "viewer")
		token := createTestToken(t, authService, user)

		userService := services.NewUserService(cfg)
		err := userService.DeleteUser("ephemeral", "admin")
		assert.NoError(t, err)

		w := doJSON(router, "GET", "/api/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GET /api/health - Public", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
