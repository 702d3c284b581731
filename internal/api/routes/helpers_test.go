package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"emsys/internal/config"
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupTestDB initializes a test database
func setupTestDB(t *testing.T) *config.Config {
	testDBPath := fmt.Sprintf("%s/emsys_test_%d.db", os.TempDir(), time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: testDBPath,
			},
		},
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-testing-only",
			ExpiresIn: "24h",
			Issuer:    "emsys-test",
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
		Admin: config.AdminConfig{
			Username: "admin",
			Password: "admin123",
			Email:    "admin@test.local",
		},
	}

	err := models.InitDB(cfg)
	require.NoError(t, err)

	err = models.SeedDefaults()
	require.NoError(t, err)

	return cfg
}

// cleanupTestDB cleans up the test database
func cleanupTestDB(t *testing.T, cfg *config.Config) {
	if models.DB != nil {
		sqlDB, err := models.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
		if cfg != nil && cfg.Database.Type == "sqlite" {
			os.Remove(cfg.Database.SQLite.Path)
		}
	}
	models.DB = nil
}

// createTestUser creates a user and returns it
func createTestUser(t *testing.T, authService *services.AuthService, username, password, role string) *models.User {
	user, err := authService.Register(username, username+"@test.local", password, role, "Test "+username)
	require.NoError(t, err)
	return user
}

// createTestToken issues a token for a user
func createTestToken(t *testing.T, authService *services.AuthService, user *models.User) string {
	token, _, err := authService.GenerateToken(user)
	require.NoError(t, err)
	return token
}

// setupTestRouter creates a test router with routes
func setupTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, cfg)
	return r
}

// doJSON performs a request with an optional JSON body and bearer token
func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
