package handlers

import (
	"errors"

	"emsys/internal/api/middleware"
	"emsys/internal/config"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(cfg *config.Config) *UserHandler {
	return &UserHandler{userService: services.NewUserService(cfg)}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	FullName string `json:"full_name"`
	Active   *bool  `json:"active"`
}

type UpdateUserRequest struct {
	Email       *string `json:"email"`
	Role        *string `json:"role"`
	FullName    *string `json:"full_name"`
	Active      *bool   `json:"active"`
	NewPassword *string `json:"new_password"`
}

// GetUsers lists all accounts
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get users"})
		return
	}
	c.JSON(200, gin.H{"users": users, "total": len(users)})
}

// CreateUser creates an account on behalf of an administrator. When no
// password is supplied the account gets the fixed default one.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	actor := middleware.CurrentUser(c)
	user, err := h.userService.CreateUser(req.Username, req.Email, req.Password, req.Role, req.FullName, active, actor.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			c.JSON(400, gin.H{"error": "Username already exists"})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(400, gin.H{"error": "Email already registered"})
		case errors.Is(err, services.ErrInvalidRole):
			c.JSON(400, gin.H{"error": "Invalid role"})
		default:
			c.JSON(500, gin.H{"error": "Failed to create user"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "User created successfully", "username": user.Username})
}

// UpdateUser applies a partial update to another account
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	actor := middleware.CurrentUser(c)
	data := services.UserUpdateData{
		Email:       req.Email,
		Role:        req.Role,
		FullName:    req.FullName,
		Active:      req.Active,
		NewPassword: req.NewPassword,
	}

	err := h.userService.UpdateUser(c.Param("username"), data, actor.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(404, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrSelfUpdate):
			c.JSON(400, gin.H{"error": "Cannot modify your own account"})
		case errors.Is(err, services.ErrEmailInUse):
			c.JSON(400, gin.H{"error": "Email already used by another user"})
		case errors.Is(err, services.ErrInvalidRole):
			c.JSON(400, gin.H{"error": "Invalid role"})
		case errors.Is(err, services.ErrLastAdmin):
			c.JSON(400, gin.H{"error": "At least one active administrator must remain"})
		default:
			c.JSON(500, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "User updated successfully"})
}

// DeleteUser removes an account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	err := h.userService.DeleteUser(c.Param("username"), actor.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(404, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrSelfDelete):
			c.JSON(400, gin.H{"error": "Cannot delete your own account"})
		case errors.Is(err, services.ErrAdminDelete):
			c.JSON(400, gin.H{"error": "Administrator accounts cannot be deleted"})
		default:
			c.JSON(500, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "User deleted successfully"})
}

// ResetPassword sets an account back to the fixed reset password and
// returns the new value
func (h *UserHandler) ResetPassword(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	newPassword, err := h.userService.ResetPassword(c.Param("username"), actor.Username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(200, gin.H{"message": "Password reset successfully", "new_password": newPassword})
}
