package handlers

import (
	"emsys/internal/api/middleware"
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	logService *services.LogService
}

func NewLogHandler() *LogHandler {
	return &LogHandler{logService: services.NewLogService()}
}

type CreateLogRequest struct {
	Action   string `json:"action" binding:"required"`
	Details  string `json:"details"`
	EventID  string `json:"event_id"`
	Priority string `json:"priority"`
}

// CreateLog records an operational log entry for the current user
func (h *LogHandler) CreateLog(c *gin.Context) {
	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	entry := &models.OperationalLog{
		Action:   req.Action,
		Details:  req.Details,
		EventID:  req.EventID,
		Priority: req.Priority,
	}

	if err := h.logService.CreateLog(entry, user.Username); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create log"})
		return
	}

	c.JSON(200, gin.H{"message": "Log created successfully", "log_id": entry.ID})
}

// GetLogs returns the most recent log entries, newest first
func (h *LogHandler) GetLogs(c *gin.Context) {
	logs, err := h.logService.GetLogs()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get logs"})
		return
	}
	c.JSON(200, logs)
}
