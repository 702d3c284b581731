package handlers

import (
	"errors"

	"emsys/internal/api/middleware"
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	permissionService *services.PermissionService
}

func NewPermissionHandler(permissionService *services.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
	Description string   `json:"description"`
}

// GetAllPermissions returns the effective permission set per role plus the
// catalogue of known permissions and roles
func (h *PermissionHandler) GetAllPermissions(c *gin.Context) {
	rolePermissions, err := h.permissionService.AllRolePermissions()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get permissions"})
		return
	}

	c.JSON(200, gin.H{
		"role_permissions":      rolePermissions,
		"available_permissions": services.AllPermissions,
		"roles":                 models.UserRoles,
	})
}

// GetRolePermissions returns the effective permission set for one role
func (h *PermissionHandler) GetRolePermissions(c *gin.Context) {
	rolePerms, err := h.permissionService.RolePermissions(c.Param("role"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			c.JSON(404, gin.H{"error": "Role not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to get permissions"})
		return
	}
	c.JSON(200, rolePerms)
}

// UpdateRolePermissions replaces the permission set for a role
func (h *PermissionHandler) UpdateRolePermissions(c *gin.Context) {
	var req UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	role := c.Param("role")
	err := h.permissionService.UpdateRolePermissions(role, req.Permissions, req.Description, actor.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			c.JSON(404, gin.H{"error": "Role not found"})
		case errors.Is(err, services.ErrAdminManageLocked):
			c.JSON(400, gin.H{"error": "The permissions.manage permission cannot be removed from the admin role"})
		default:
			c.JSON(500, gin.H{"error": "Failed to update permissions"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "Permissions updated successfully", "role": role})
}
