package handlers

import (
	"errors"

	"emsys/internal/api/middleware"
	"emsys/internal/config"
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *UserSummary `json:"user"`
}

type UserSummary struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleViewer
	}

	_, err := h.authService.Register(req.Username, req.Email, req.Password, role, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrInvalidRole):
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": "Failed to register user"})
		}
		return
	}

	c.JSON(200, gin.H{"message": "User registered successfully"})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid credentials"})
		return
	}

	token, _, err := h.authService.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		c.JSON(500, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(200, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: &UserSummary{
			Username: user.Username,
			Role:     user.Role,
			FullName: user.FullName,
		},
	})
}

// GetMe returns current user information
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(200, gin.H{
		"username":  user.Username,
		"role":      user.Role,
		"full_name": user.FullName,
		"email":     user.Email,
	})
}
