package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"emsys/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrAdminManageLocked = errors.New("permissions.manage cannot be removed from the admin role")
)

// PermManage guards the permission override table itself.
const PermManage = "permissions.manage"

// AllPermissions is the catalogue of every permission string the system
// understands. Checks are exact set membership, no hierarchy.
var AllPermissions = []string{
	"events.create", "events.read", "events.update", "events.delete",
	"inventory.create", "inventory.read", "inventory.update", "inventory.delete",
	"logs.create", "logs.read", "logs.update", "logs.delete",
	"users.create", "users.read", "users.update", "users.delete",
	"resources.create", "resources.read", "resources.update", "resources.delete",
	"reports.generate", "dashboard.read", PermManage,
}

// DefaultPermissions maps each role to its compiled-in permission set, used
// whenever no stored override exists for the role.
var DefaultPermissions = map[string][]string{
	models.RoleAdmin: {
		"events.create", "events.read", "events.update", "events.delete",
		"inventory.create", "inventory.read", "inventory.update", "inventory.delete",
		"logs.create", "logs.read", "logs.update", "logs.delete",
		"users.create", "users.read", "users.update", "users.delete",
		"resources.create", "resources.read", "resources.update", "resources.delete",
		"reports.generate", "dashboard.read", PermManage,
	},
	models.RoleCoordinator: {
		"events.create", "events.read", "events.update",
		"inventory.create", "inventory.read", "inventory.update", "inventory.delete",
		"logs.create", "logs.read",
		"resources.create", "resources.read", "resources.update", "resources.delete",
		"reports.generate", "dashboard.read",
	},
	models.RoleOperator: {
		"events.create", "events.read", "events.update",
		"logs.create", "logs.read",
		"dashboard.read",
	},
	models.RoleWarehouse: {
		"inventory.create", "inventory.read", "inventory.update", "inventory.delete",
		"dashboard.read",
	},
	models.RoleViewer: {
		"events.read", "inventory.read", "logs.read", "dashboard.read",
	},
}

type PermissionService struct {
	logService *LogService
}

func NewPermissionService() *PermissionService {
	return &PermissionService{logService: NewLogService()}
}

// Check reports whether role holds permission. A stored override set for the
// role replaces the compiled-in default set entirely. Unknown roles and
// lookup failures deny rather than raise.
func (s *PermissionService) Check(role, permission string) bool {
	var override models.RolePermission
	err := models.DB.Where("role = ?", role).First(&override).Error
	if err == nil {
		return contains(override.Permissions, permission)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).WithField("role", role).Warn("permission lookup failed, denying")
		return false
	}
	return contains(DefaultPermissions[role], permission)
}

// RolePermissions returns the effective permission set for a role: the
// stored override when one exists, else the compiled-in default.
func (s *PermissionService) RolePermissions(role string) (*models.RolePermission, error) {
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	var override models.RolePermission
	err := models.DB.Where("role = ?", role).First(&override).Error
	if err == nil {
		return &override, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &models.RolePermission{
		Role:        role,
		Permissions: DefaultPermissions[role],
		Description: fmt.Sprintf("Default permissions for %s", models.UserRoles[role]),
	}, nil
}

// AllRolePermissions returns the effective permission set for every role.
func (s *PermissionService) AllRolePermissions() (map[string][]string, error) {
	current := make(map[string][]string, len(models.UserRoles))
	for role := range models.UserRoles {
		perms, err := s.RolePermissions(role)
		if err != nil {
			return nil, err
		}
		current[role] = perms.Permissions
	}
	return current, nil
}

// UpdateRolePermissions stores an override permission set for a role. The
// admin role can never lose permissions.manage: an override dropping it is
// rejected outright so administrators cannot lock themselves out of this
// endpoint.
func (s *PermissionService) UpdateRolePermissions(role string, permissions []string, description, updatedBy string) error {
	if !models.IsValidRole(role) {
		return ErrInvalidRole
	}
	if role == models.RoleAdmin && !contains(permissions, PermManage) {
		return ErrAdminManageLocked
	}

	override := models.RolePermission{
		Role:        role,
		Permissions: permissions,
		Description: description,
		UpdatedAt:   time.Now(),
		UpdatedBy:   updatedBy,
	}
	err := models.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}},
		DoUpdates: clause.AssignmentColumns([]string{"permissions", "description", "updated_at", "updated_by"}),
	}).Create(&override).Error
	if err != nil {
		return err
	}

	s.logService.Record(updatedBy,
		fmt.Sprintf("Role permissions updated: %s", role),
		fmt.Sprintf("Permissions changed for role %s. New permissions: %s", role, strings.Join(permissions, ", ")),
		models.PriorityHigh, "")

	return nil
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
