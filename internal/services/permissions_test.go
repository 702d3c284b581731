package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"emsys/internal/config"
	"emsys/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTestDB(t *testing.T) *config.Config {
	testDBPath := fmt.Sprintf("%s/emsys_svc_test_%d.db", os.TempDir(), time.Now().UnixNano())

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type:   "sqlite",
			SQLite: config.SQLiteConfig{Path: testDBPath},
		},
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-testing-only",
			ExpiresIn: "24h",
			Issuer:    "emsys-test",
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}

	require.NoError(t, models.InitDB(cfg))

	t.Cleanup(func() {
		if models.DB != nil {
			if sqlDB, err := models.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		models.DB = nil
		os.Remove(testDBPath)
	})

	return cfg
}

func TestPermissionCheckDefaults(t *testing.T) {
	setupServiceTestDB(t)
	permService := NewPermissionService()

	t.Run("admin holds every catalogued permission", func(t *testing.T) {
		for _, perm := range AllPermissions {
			assert.True(t, permService.Check(models.RoleAdmin, perm), perm)
		}
	})

	t.Run("viewer is read only", func(t *testing.T) {
		assert.True(t, permService.Check(models.RoleViewer, "events.read"))
		assert.True(t, permService.Check(models.RoleViewer, "inventory.read"))
		assert.False(t, permService.Check(models.RoleViewer, "events.create"))
		assert.False(t, permService.Check(models.RoleViewer, "users.delete"))
	})

	t.Run("warehouse has inventory but not events", func(t *testing.T) {
		assert.True(t, permService.Check(models.RoleWarehouse, "inventory.delete"))
		assert.False(t, permService.Check(models.RoleWarehouse, "events.read"))
	})

	t.Run("unknown role denies", func(t *testing.T) {
		assert.False(t, permService.Check("superuser", "events.read"))
		assert.False(t, permService.Check("", "events.read"))
	})

	t.Run("unknown permission denies", func(t *testing.T) {
		assert.False(t, permService.Check(models.RoleAdmin, "events.explode"))
	})
}

func TestPermissionOverrides(t *testing.T) {
	setupServiceTestDB(t)
	permService := NewPermissionService()

	t.Run("override replaces the default set", func(t *testing.T) {
		err := permService.UpdateRolePermissions(models.RoleOperator,
			[]string{"events.read"}, "restricted", "admin")
		require.NoError(t, err)

		assert.True(t, permService.Check(models.RoleOperator, "events.read"))
		// events.create is an operator default but the override dropped it
		assert.False(t, permService.Check(models.RoleOperator, "events.create"))
	})

	t.Run("second write upserts the same row", func(t *testing.T) {
		err := permService.UpdateRolePermissions(models.RoleOperator,
			[]string{"events.read", "events.create"}, "restored", "admin")
		require.NoError(t, err)

		assert.True(t, permService.Check(models.RoleOperator, "events.create"))

		var count int64
		require.NoError(t, models.DB.Model(&models.RolePermission{}).
			Where("role = ?", models.RoleOperator).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		err := permService.UpdateRolePermissions("superuser", []string{"events.read"}, "", "admin")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("permissions.manage cannot leave the admin role", func(t *testing.T) {
		err := permService.UpdateRolePermissions(models.RoleAdmin, []string{"events.read"}, "", "admin")
		assert.ErrorIs(t, err, ErrAdminManageLocked)

		// An admin set that keeps permissions.manage is fine
		err = permService.UpdateRolePermissions(models.RoleAdmin,
			[]string{"events.read", PermManage}, "", "admin")
		assert.NoError(t, err)
	})

	t.Run("override writes an audit entry", func(t *testing.T) {
		var count int64
		require.NoError(t, models.DB.Model(&models.OperationalLog{}).
			Where("action LIKE ?", "%permission%").Count(&count).Error)
		assert.Greater(t, count, int64(0))
	})
}
