package handlers

import (
	"errors"
	"time"

	"emsys/internal/api/middleware"
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler() *InventoryHandler {
	return &InventoryHandler{inventoryService: services.NewInventoryService()}
}

type ItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Quantity    int      `json:"quantity"`
	Unit        string   `json:"unit"`
	MinQuantity int      `json:"min_quantity"`
	MaxQuantity *int     `json:"max_quantity"`
	Location    string   `json:"location"`
	ExpiryDate  *string  `json:"expiry_date"`
	Supplier    string   `json:"supplier"`
	CostPerUnit *float64 `json:"cost_per_unit"`
	Notes       string   `json:"notes"`
}

type UpdateQuantityRequest struct {
	QuantityChange int    `json:"quantity_change" binding:"required"`
	Reason         string `json:"reason"`
	Location       string `json:"location"`
}

func (r *ItemRequest) toModel() (*models.InventoryItem, error) {
	item := &models.InventoryItem{
		Name:        r.Name,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		MinQuantity: r.MinQuantity,
		MaxQuantity: r.MaxQuantity,
		Location:    r.Location,
		Supplier:    r.Supplier,
		CostPerUnit: r.CostPerUnit,
		Notes:       r.Notes,
	}
	if r.ExpiryDate != nil && *r.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", *r.ExpiryDate)
		if err != nil {
			return nil, err
		}
		item.ExpiryDate = &expiry
	}
	return item, nil
}

// CreateItem adds an item to the inventory
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, err := req.toModel()
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid expiry date, expected YYYY-MM-DD"})
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.inventoryService.CreateItem(item, user.Username); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(200, gin.H{"message": "Item created successfully", "item_id": item.ID})
}

// GetItems lists inventory items, with optional filters
func (h *InventoryHandler) GetItems(c *gin.Context) {
	filter := services.InventoryFilter{
		Category:     c.Query("category"),
		Location:     c.Query("location"),
		LowStock:     c.Query("low_stock") == "true",
		ExpiringSoon: c.Query("expiring_soon") == "true",
	}

	items, err := h.inventoryService.GetItems(filter)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get items"})
		return
	}
	c.JSON(200, items)
}

// GetItem returns a single inventory item
func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.inventoryService.GetItem(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(404, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to get item"})
		return
	}
	c.JSON(200, item)
}

// UpdateItem replaces the editable fields of an item
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, err := req.toModel()
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid expiry date, expected YYYY-MM-DD"})
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.inventoryService.UpdateItem(c.Param("id"), item, user.Username); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(404, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(200, gin.H{"message": "Item updated successfully"})
}

// DeleteItem removes an item from the inventory
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.inventoryService.DeleteItem(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(404, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to delete item"})
		return
	}
	c.JSON(200, gin.H{"message": "Item deleted successfully"})
}

// UpdateQuantity applies a signed quantity delta to an item
func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	newQuantity, err := h.inventoryService.UpdateQuantity(c.Param("id"), req.QuantityChange, req.Reason, req.Location, user.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(404, gin.H{"error": "Item not found"})
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(400, gin.H{"error": "Quantity cannot become negative"})
		default:
			c.JSON(500, gin.H{"error": "Failed to update quantity"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Quantity updated successfully", "new_quantity": newQuantity})
}

// GetAlerts returns low stock and expiring items
func (h *InventoryHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.inventoryService.GetAlerts()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get alerts"})
		return
	}
	c.JSON(200, alerts)
}

// GetCategories returns the distinct categories in use
func (h *InventoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.inventoryService.GetCategories()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get categories"})
		return
	}
	c.JSON(200, gin.H{"categories": categories})
}

// GetLocations returns the distinct storage locations in use
func (h *InventoryHandler) GetLocations(c *gin.Context) {
	locations, err := h.inventoryService.GetLocations()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get locations"})
		return
	}
	c.JSON(200, gin.H{"locations": locations})
}
