package handlers

import (
	"errors"
	"fmt"

	"emsys/internal/api/middleware"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

func NewTaxonomyHandler() *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: services.NewTaxonomyService()}
}

type EventTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// GetEventTypes lists all event types
func (h *TaxonomyHandler) GetEventTypes(c *gin.Context) {
	types, err := h.taxonomyService.GetEventTypes()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get event types"})
		return
	}
	c.JSON(200, types)
}

// CreateEventType adds a custom event type
func (h *TaxonomyHandler) CreateEventType(c *gin.Context) {
	var req EventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	eventType, err := h.taxonomyService.CreateEventType(req.Name, req.Description, user.Username)
	if err != nil {
		if errors.Is(err, services.ErrTaxonomyNameTaken) {
			c.JSON(400, gin.H{"error": "Event type already exists"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to create event type"})
		return
	}

	c.JSON(200, gin.H{"message": "Event type created successfully", "event_type_id": eventType.ID})
}

// UpdateEventType renames or re-describes an event type
func (h *TaxonomyHandler) UpdateEventType(c *gin.Context) {
	var req EventTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	err := h.taxonomyService.UpdateEventType(c.Param("id"), req.Name, req.Description, user.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaxonomyNotFound):
			c.JSON(404, gin.H{"error": "Event type not found"})
		case errors.Is(err, services.ErrTaxonomyNameTaken):
			c.JSON(400, gin.H{"error": "Event type already exists"})
		default:
			c.JSON(500, gin.H{"error": "Failed to update event type"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Event type updated successfully"})
}

// DeleteEventType removes a non-default, unreferenced event type
func (h *TaxonomyHandler) DeleteEventType(c *gin.Context) {
	user := middleware.CurrentUser(c)
	err := h.taxonomyService.DeleteEventType(c.Param("id"), user.Username)
	if err != nil {
		var refErr *services.ReferencedError
		switch {
		case errors.Is(err, services.ErrTaxonomyNotFound):
			c.JSON(404, gin.H{"error": "Event type not found"})
		case errors.Is(err, services.ErrTaxonomyIsDefault):
			c.JSON(400, gin.H{"error": "Default event types cannot be deleted"})
		case errors.As(err, &refErr):
			c.JSON(400, gin.H{"error": fmt.Sprintf("Event type is used by %d events", refErr.Count)})
		default:
			c.JSON(500, gin.H{"error": "Failed to delete event type"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Event type deleted successfully"})
}

// GetCategories lists all inventory categories
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	categories, err := h.taxonomyService.GetInventoryCategories()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get categories"})
		return
	}
	c.JSON(200, categories)
}

// CreateCategory adds a custom inventory category
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	category, err := h.taxonomyService.CreateInventoryCategory(req.Name, req.Description, req.Icon, user.Username)
	if err != nil {
		if errors.Is(err, services.ErrTaxonomyNameTaken) {
			c.JSON(400, gin.H{"error": "Category already exists"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(200, gin.H{"message": "Category created successfully", "category_id": category.ID})
}

// UpdateCategory changes the name, description or icon of a category
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	err := h.taxonomyService.UpdateInventoryCategory(c.Param("id"), req.Name, req.Description, req.Icon, user.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaxonomyNotFound):
			c.JSON(404, gin.H{"error": "Category not found"})
		case errors.Is(err, services.ErrTaxonomyNameTaken):
			c.JSON(400, gin.H{"error": "Category already exists"})
		default:
			c.JSON(500, gin.H{"error": "Failed to update category"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Category updated successfully"})
}

// DeleteCategory removes a non-default, unreferenced category
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	user := middleware.CurrentUser(c)
	err := h.taxonomyService.DeleteInventoryCategory(c.Param("id"), user.Username)
	if err != nil {
		var refErr *services.ReferencedError
		switch {
		case errors.Is(err, services.ErrTaxonomyNotFound):
			c.JSON(404, gin.H{"error": "Category not found"})
		case errors.Is(err, services.ErrTaxonomyIsDefault):
			c.JSON(400, gin.H{"error": "Default categories cannot be deleted"})
		case errors.As(err, &refErr):
			c.JSON(400, gin.H{"error": fmt.Sprintf("Category is used by %d inventory items", refErr.Count)})
		default:
			c.JSON(500, gin.H{"error": "Failed to delete category"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Category deleted successfully"})
}
