package handlers

import (
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	resourceService *services.ResourceService
}

func NewResourceHandler() *ResourceHandler {
	return &ResourceHandler{resourceService: services.NewResourceService()}
}

type CreateResourceRequest struct {
	FullName        string   `json:"full_name" binding:"required"`
	Role            string   `json:"role"`
	Specializations []string `json:"specializations"`
	ContactPhone    string   `json:"contact_phone"`
	ContactEmail    string   `json:"contact_email"`
	Availability    string   `json:"availability"`
	Location        string   `json:"location"`
}

// CreateResource registers a trained resource
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resource := &models.TrainedResource{
		FullName:        req.FullName,
		Role:            req.Role,
		Specializations: req.Specializations,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		Availability:    req.Availability,
		Location:        req.Location,
	}

	if err := h.resourceService.CreateResource(resource); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create resource"})
		return
	}

	c.JSON(200, gin.H{"message": "Resource created successfully", "resource_id": resource.ID})
}

// GetResources lists all trained resources
func (h *ResourceHandler) GetResources(c *gin.Context) {
	resources, err := h.resourceService.GetResources()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get resources"})
		return
	}
	c.JSON(200, resources)
}
