package handlers

import (
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	statsService *services.StatsService
}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{statsService: services.NewStatsService()}
}

// GetDashboardStats returns the operational counters shown on the dashboard
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.statsService.GetDashboardStats()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get dashboard stats"})
		return
	}
	c.JSON(200, stats)
}

// GetAdminStats returns the user, system and recent-activity figures for the
// administration panel
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.statsService.GetAdminStats()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get admin stats"})
		return
	}
	c.JSON(200, stats)
}

// Health reports service liveness
func Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy", "service": "emergency-management-api"})
}
