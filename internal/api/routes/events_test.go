package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"emsys/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := services.NewAuthService(cfg)
	router := setupTestRouter(cfg)

	operator := createTestUser(t, authService, "operator", "secret123", "operator")
	viewer := createTestUser(t, authService, "viewer", "secret123", "viewer")
	warehouse := createTestUser(t, authService, "warehouse", "secret123", "warehouse")

	operatorToken := createTestToken(t, authService, operator)
	viewerToken := createTestToken(t, authService, viewer)
	warehouseToken := createTestToken(t, authService, warehouse)

	var eventID string

	t.Run("POST /api/events - Success with operator", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/events", operatorToken, map[string]interface{}{
			"title":      "Flooding near river",
			"event_type": "flood",
			"severity":   "high",
			"latitude":   45.07,
			"longitude":  7.69,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		eventID = response["event_id"].(string)
		require.NotEmpty(t, eventID)
	})

	t.Run("POST /api/events - Forbidden for viewer", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/events", viewerToken, map[string]interface{}{
			"title":      "Should not exist",
			"event_type": "fire",
			"severity":   "low",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("POST /api/events - Forbidden for warehouse", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/events", warehouseToken, map[string]interface{}{
			"title":      "Should not exist",
			"event_type": "fire",
			"severity":   "low",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("POST /api/events - Missing required fields", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/events", operatorToken, map[string]interface{}{
			"title": "No type or severity",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /api/events - Viewer can read", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/events", viewerToken, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var events []map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &events)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("GET /api/events - Forbidden for warehouse", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/events", warehouseToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /api/events/:id - Success", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/events/"+eventID, viewerToken, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var event map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &event)
		assert.NoError(t, err)
		assert.Equal(t, "Flooding near river", event["title"])
		assert.Equal(t, "open", event["status"])
	})

	t.Run("GET /api/events/:id - Not found", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/events/no-such-id", viewerToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PUT /api/events/:id - Partial update", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/events/"+eventID, operatorToken, map[string]interface{}{
			"status": "in_progress",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "GET", "/api/events/"+eventID, operatorToken, nil)
		var event map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &event)
		assert.NoError(t, err)
		assert.Equal(t, "in_progress", event["status"])
		assert.Equal(t, "Flooding near river", event["title"])
		assert.Equal(t, "operator", event["updated_by"])
	})

	t.Run("GET /api/events/map - Active filter includes in_progress", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/events/map", viewerToken, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, float64(1), response["total"])
	})

	t.Run("GET /api/events/map - Excludes events without coordinates", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/events", operatorToken, map[string]interface{}{
			"title":      "No location recorded",
			"event_type": "fire",
			"severity":   "low",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "GET", "/api/events/map", viewerToken, nil)
		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, float64(1), response["total"])
	})

	t.Run("GET /api/events/map - Status filter", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/events/map?status=resolved", viewerToken, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, float64(0), response["total"])
	})

	t.Run("DELETE /api/events/:id - Forbidden for operator", func(t *testing.T) {
		w := doJSON(router, "DELETE", "/api/events/"+eventID, operatorToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("DELETE /api/events/:id - Success with admin", func(t *testing.T) {
		admin := createTestUser(t, authService, "eventadmin", "secret123", "admin")
		adminToken := createTestToken(t, authService, admin)

		w := doJSON(router, "DELETE", "/api/events/"+eventID, adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "GET", "/api/events/"+eventID, adminToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
