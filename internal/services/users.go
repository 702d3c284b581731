package services

import (
	"errors"
	"time"

	"emsys/internal/config"
	"emsys/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSelfDelete  = errors.New("cannot delete your own account")
	ErrSelfUpdate  = errors.New("cannot modify your own account through this endpoint")
	ErrAdminDelete = errors.New("administrator accounts cannot be deleted")
	ErrLastAdmin   = errors.New("at least one active administrator must remain")
	ErrEmailInUse  = errors.New("email already used by another user")
)

// defaultPassword is assigned when an admin creates a user without one;
// resetPassword is assigned by the password reset endpoint.
const (
	defaultPassword = "default123"
	resetPassword   = "reset123"
)

type UserService struct {
	authService *AuthService
}

func NewUserService(cfg *config.Config) *UserService {
	return &UserService{authService: NewAuthService(cfg)}
}

// UserUpdateData carries the partial update for a user. Nil fields are left
// untouched.
type UserUpdateData struct {
	Email       *string
	Role        *string
	FullName    *string
	Active      *bool
	NewPassword *string
}

// GetUsers returns all users sorted by username. Password hashes never
// serialize.
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := models.DB.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUser(username string) (*models.User, error) {
	var user models.User
	if err := models.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user on behalf of an administrator. An empty password
// falls back to the default one.
func (s *UserService) CreateUser(username, email, password, role, fullName string, active bool, createdBy string) (*models.User, error) {
	var existing models.User
	if err := models.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	if password == "" {
		password = defaultPassword
	}
	hashedPassword, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		FullName:     fullName,
		Active:       active,
		CreatedAt:    time.Now(),
		CreatedBy:    createdBy,
	}
	if err := models.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update to another user's account. Self-edits
// through this path are rejected, and a change that would demote or
// deactivate the last active administrator is refused.
func (s *UserService) UpdateUser(username string, data UserUpdateData, actor string) error {
	if username == actor {
		return ErrSelfUpdate
	}

	existing, err := s.GetUser(username)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
		"updated_by": actor,
	}

	if data.Email != nil {
		var conflict models.User
		if err := models.DB.Where("email = ? AND username <> ?", *data.Email, username).First(&conflict).Error; err == nil {
			return ErrEmailInUse
		}
		updates["email"] = *data.Email
	}

	if data.Role != nil {
		if !models.IsValidRole(*data.Role) {
			return ErrInvalidRole
		}
		updates["role"] = *data.Role
	}

	if data.FullName != nil {
		updates["full_name"] = *data.FullName
	}

	if data.Active != nil {
		updates["active"] = *data.Active
	}

	if data.NewPassword != nil {
		hashedPassword, err := s.authService.HashPassword(*data.NewPassword)
		if err != nil {
			return err
		}
		updates["password_hash"] = hashedPassword
	}

	// Last-admin guard: refuse demoting or deactivating the only remaining
	// active administrator.
	demoted := data.Role != nil && existing.Role == models.RoleAdmin && *data.Role != models.RoleAdmin
	deactivated := data.Active != nil && existing.Role == models.RoleAdmin && existing.Active && !*data.Active
	if demoted || deactivated {
		var admins int64
		if err := models.DB.Model(&models.User{}).
			Where("role = ? AND active = ? AND username <> ?", models.RoleAdmin, true, username).
			Count(&admins).Error; err != nil {
			return err
		}
		if admins == 0 {
			return ErrLastAdmin
		}
	}

	return models.DB.Model(&models.User{}).Where("username = ?", username).Updates(updates).Error
}

// DeleteUser removes a user. Self-deletion is always rejected, and accounts
// holding the admin role cannot be deleted through this path at all.
func (s *UserService) DeleteUser(username, actor string) error {
	if username == actor {
		return ErrSelfDelete
	}

	existing, err := s.GetUser(username)
	if err != nil {
		return err
	}
	if existing.Role == models.RoleAdmin {
		return ErrAdminDelete
	}

	return models.DB.Where("username = ?", username).Delete(&models.User{}).Error
}

// ResetPassword sets a user's password back to the fixed reset value and
// returns it so the caller can hand it over.
func (s *UserService) ResetPassword(username, actor string) (string, error) {
	if _, err := s.GetUser(username); err != nil {
		return "", err
	}

	hashedPassword, err := s.authService.HashPassword(resetPassword)
	if err != nil {
		return "", err
	}

	now := time.Now()
	if err := models.DB.Model(&models.User{}).Where("username = ?", username).Updates(map[string]interface{}{
		"password_hash":     hashedPassword,
		"password_reset_at": now,
		"password_reset_by": actor,
	}).Error; err != nil {
		return "", err
	}
	return resetPassword, nil
}
