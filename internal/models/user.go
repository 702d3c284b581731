package models

import (
	"time"
)

// Fixed role set. Roles are not stored independently; users and the
// role permission overrides reference them by name.
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleOperator    = "operator"
	RoleWarehouse   = "warehouse"
	RoleViewer      = "viewer"
)

// UserRoles maps each role to its display description.
var UserRoles = map[string]string{
	RoleAdmin:       "Administrator",
	RoleCoordinator: "Emergency Coordinator",
	RoleOperator:    "Operations Room Operator",
	RoleWarehouse:   "Warehouse Clerk",
	RoleViewer:      "Viewer",
}

// IsValidRole reports whether role is one of the fixed enumeration.
func IsValidRole(role string) bool {
	_, ok := UserRoles[role]
	return ok
}

type User struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Username        string     `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email           string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    string     `json:"-" gorm:"type:varchar(255);not null"`
	Role            string     `json:"role" gorm:"type:varchar(50);not null;index"`
	FullName        string     `json:"full_name" gorm:"type:varchar(255)"`
	Active          bool       `json:"active" gorm:"default:true"`
	CreatedAt       time.Time  `json:"created_at"`
	CreatedBy       string     `json:"created_by,omitempty" gorm:"type:varchar(255)"`
	UpdatedAt       time.Time  `json:"updated_at"`
	UpdatedBy       string     `json:"updated_by,omitempty" gorm:"type:varchar(255)"`
	PasswordResetAt *time.Time `json:"password_reset_at,omitempty"`
	PasswordResetBy string     `json:"password_reset_by,omitempty" gorm:"type:varchar(255)"`
}

// RolePermission is a stored per-role permission set that replaces the
// compiled-in default set for that role when present.
type RolePermission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Role        string    `json:"role" gorm:"type:varchar(50);uniqueIndex;not null"`
	Permissions []string  `json:"permissions" gorm:"serializer:json"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by,omitempty" gorm:"type:varchar(255)"`
}
