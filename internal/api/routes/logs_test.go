package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := services.NewAuthService(cfg)
	router := setupTestRouter(cfg)

	operator := createTestUser(t, authService, "operator", "secret123", "operator")
	warehouse := createTestUser(t, authService, "warehouse", "secret123", "warehouse")

	operatorToken := createTestToken(t, authService, operator)
	warehouseToken := createTestToken(t, authService, warehouse)

	t.Run("POST /api/logs - Operator forced from token", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/logs", operatorToken, map[string]interface{}{
			"action":   "Radio check",
			"details":  "All units responding",
			"operator": "someone-else",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "GET", "/api/logs", operatorToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var logs []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))

		var found bool
		for _, entry := range logs {
			if entry["action"] == "Radio check" {
				found = true
				assert.Equal(t, "operator", entry["operator"])
				assert.Equal(t, "normal", entry["priority"])
			}
		}
		assert.True(t, found)
	})

	t.Run("POST /api/logs - Forbidden for warehouse", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/logs", warehouseToken, map[string]interface{}{
			"action": "Should not exist",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /api/logs - Capped at 100, newest first", func(t *testing.T) {
		base := time.Now()
		for i := 0; i < 110; i++ {
			entry := &models.OperationalLog{
				ID:        fmt.Sprintf("bulk-%03d", i),
				Timestamp: base.Add(time.Duration(i) * time.Second),
				Operator:  "operator",
				Action:    fmt.Sprintf("Bulk action %d", i),
				Priority:  models.PriorityLow,
			}
			require.NoError(t, models.DB.Create(entry).Error)
		}

		w := doJSON(router, "GET", "/api/logs", operatorToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var logs []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
		assert.Len(t, logs, 100)
		assert.Equal(t, "Bulk action 109", logs[0]["action"])
	})
}

func TestResourceRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := services.NewAuthService(cfg)
	router := setupTestRouter(cfg)

	coordinator := createTestUser(t, authService, "coord", "secret123", "coordinator")
	viewer := createTestUser(t, authService, "viewer", "secret123", "viewer")

	coordToken := createTestToken(t, authService, coordinator)
	viewerToken := createTestToken(t, authService, viewer)

	t.Run("POST /api/resources - Success with coordinator", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/resources", coordToken, map[string]interface{}{
			"full_name":       "Maria Bianchi",
			"role":            "paramedic",
			"specializations": []string{"first aid", "alpine rescue"},
			"contact_phone":   "+39 333 1234567",
		})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("POST /api/resources - Forbidden for viewer", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/resources", viewerToken, map[string]interface{}{
			"full_name": "Should Not Exist",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GET /api/resources - Any token, default availability", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/resources", viewerToken, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resources []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resources))
		require.Len(t, resources, 1)
		assert.Equal(t, "Maria Bianchi", resources[0]["full_name"])
		assert.Equal(t, "available", resources[0]["availability"])
	})
}

func TestDashboardRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := services.NewAuthService(cfg)
	router := setupTestRouter(cfg)

	viewer := createTestUser(t, authService, "viewer", "secret123", "viewer")
	viewerToken := createTestToken(t, authService, viewer)

	operator := createTestUser(t, authService, "operator", "secret123", "operator")
	operatorToken := createTestToken(t, authService, operator)

	t.Run("GET /api/dashboard/stats - Counts reflect data", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/events", operatorToken, map[string]interface{}{
			"title":      "Critical fire",
			"event_type": "fire",
			"severity":   "critical",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "GET", "/api/dashboard/stats", viewerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var stats map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, float64(1), stats["total_events"])
		assert.Equal(t, float64(1), stats["open_events"])
		assert.Equal(t, float64(1), stats["critical_events"])
		assert.Contains(t, stats, "inventory_alerts")
	})
}

func TestReportRoutes(t *testing.T) {
	cfg := setupTestDB(t)
	defer cleanupTestDB(t, cfg)

	authService := services.NewAuthService(cfg)
	router := setupTestRouter(cfg)

	operator := createTestUser(t, authService, "operator", "secret123", "operator")
	operatorToken := createTestToken(t, authService, operator)

	w := doJSON(router, "POST", "/api/events", operatorToken, map[string]interface{}{
		"title":      "Report fixture",
		"event_type": "flood",
		"severity":   "high",
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("POST /api/reports/generate - PDF is the default format", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reports/generate", operatorToken, map[string]interface{}{
			"report_type": "events",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "events_report_")
		assert.True(t, w.Body.Len() > 0)
	})

	t.Run("POST /api/reports/generate - Excel statistics", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reports/generate", operatorToken, map[string]interface{}{
			"report_type": "statistics",
			"format":      "excel",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	})

	t.Run("POST /api/reports/generate - Unsupported type", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reports/generate", operatorToken, map[string]interface{}{
			"report_type": "payroll",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /api/reports/generate - Unsupported format", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/reports/generate", operatorToken, map[string]interface{}{
			"report_type": "events",
			"format":      "csv",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /api/reports/templates", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/reports/templates", operatorToken, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response, "templates")
		assert.Contains(t, response, "filter_options")
	})
}
