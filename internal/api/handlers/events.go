package handlers

import (
	"errors"

	"emsys/internal/api/middleware"
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler() *EventHandler {
	return &EventHandler{eventService: services.NewEventService()}
}

type CreateEventRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	EventType       string   `json:"event_type" binding:"required"`
	Severity        string   `json:"severity" binding:"required"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Address         string   `json:"address"`
	Status          string   `json:"status"`
	ResourcesNeeded []string `json:"resources_needed"`
	Notes           string   `json:"notes"`
}

type UpdateEventRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	EventType       *string  `json:"event_type"`
	Severity        *string  `json:"severity"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Address         *string  `json:"address"`
	Status          *string  `json:"status"`
	ResourcesNeeded []string `json:"resources_needed"`
	Notes           *string  `json:"notes"`
}

// CreateEvent creates a new emergency event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	event := &models.EmergencyEvent{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       req.EventType,
		Severity:        req.Severity,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Address:         req.Address,
		Status:          req.Status,
		ResourcesNeeded: req.ResourcesNeeded,
		Notes:           req.Notes,
	}

	if err := h.eventService.CreateEvent(event, user.Username); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(200, gin.H{"message": "Event created successfully", "event_id": event.ID})
}

// GetEvents returns all events, newest first
func (h *EventHandler) GetEvents(c *gin.Context) {
	events, err := h.eventService.GetEvents()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get events"})
		return
	}
	c.JSON(200, events)
}

// GetMapEvents returns events carrying coordinates, for map display
func (h *EventHandler) GetMapEvents(c *gin.Context) {
	filter := services.MapFilter{
		Status:    c.Query("status"),
		EventType: c.Query("event_type"),
		Severity:  c.Query("severity"),
	}

	events, err := h.eventService.GetMapEvents(filter)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get map events"})
		return
	}

	status := filter.Status
	if status == "" {
		status = "active"
	}

	c.JSON(200, gin.H{
		"events": events,
		"total":  len(events),
		"filters_applied": gin.H{
			"status":     status,
			"event_type": filter.EventType,
			"severity":   filter.Severity,
		},
	})
}

// GetEvent returns a single event
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to get event"})
		return
	}
	c.JSON(200, event)
}

// UpdateEvent applies a partial update to an event
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	data := services.EventUpdateData{
		Title:           req.Title,
		Description:     req.Description,
		EventType:       req.EventType,
		Severity:        req.Severity,
		Status:          req.Status,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Address:         req.Address,
		ResourcesNeeded: req.ResourcesNeeded,
		Notes:           req.Notes,
	}

	if err := h.eventService.UpdateEvent(c.Param("id"), data, user.Username); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(200, gin.H{"message": "Event updated successfully"})
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.eventService.DeleteEvent(c.Param("id"), user.Username); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.JSON(404, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(200, gin.H{"message": "Event deleted successfully"})
}
