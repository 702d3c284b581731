package services

import (
	"time"

	"emsys/internal/models"
)

type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

type InventoryAlertCounts struct {
	LowStock     int64 `json:"low_stock"`
	ExpiringSoon int64 `json:"expiring_soon"`
	Total        int64 `json:"total"`
}

type DashboardStats struct {
	TotalEvents      int64                `json:"total_events"`
	OpenEvents       int64                `json:"open_events"`
	CriticalEvents   int64                `json:"critical_events"`
	InventoryItems   int64                `json:"inventory_items"`
	TrainedResources int64                `json:"trained_resources"`
	TotalLogs        int64                `json:"total_logs"`
	InventoryAlerts  InventoryAlertCounts `json:"inventory_alerts"`
}

// GetDashboardStats returns the aggregate counts shown on the dashboard.
// The alert counts use the same filters as the inventory alert queries.
func (s *StatsService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := models.DB.Model(&models.EmergencyEvent{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.EmergencyEvent{}).
		Where("status = ?", models.EventStatusOpen).Count(&stats.OpenEvents).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.EmergencyEvent{}).
		Where("severity = ?", models.SeverityCritical).Count(&stats.CriticalEvents).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.InventoryItem{}).Count(&stats.InventoryItems).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.TrainedResource{}).Count(&stats.TrainedResources).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.OperationalLog{}).Count(&stats.TotalLogs).Error; err != nil {
		return nil, err
	}

	if err := models.DB.Model(&models.InventoryItem{}).
		Where("quantity < min_quantity").Count(&stats.InventoryAlerts.LowStock).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.InventoryItem{}).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", time.Now().Add(expiryWindow)).
		Count(&stats.InventoryAlerts.ExpiringSoon).Error; err != nil {
		return nil, err
	}
	stats.InventoryAlerts.Total = stats.InventoryAlerts.LowStock + stats.InventoryAlerts.ExpiringSoon

	return stats, nil
}

type AdminUserStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByRole   map[string]int64 `json:"by_role"`
}

type AdminSystemStats struct {
	TotalEvents    int64 `json:"total_events"`
	TotalLogs      int64 `json:"total_logs"`
	TotalInventory int64 `json:"total_inventory"`
}

type AdminRecentActivity struct {
	EventsLast7Days int64 `json:"events_last_7_days"`
	LogsLast7Days   int64 `json:"logs_last_7_days"`
}

type AdminStats struct {
	Users          AdminUserStats      `json:"users"`
	System         AdminSystemStats    `json:"system"`
	RecentActivity AdminRecentActivity `json:"recent_activity"`
}

// GetAdminStats returns the administrative overview: user breakdown, system
// totals and the last seven days of activity.
func (s *StatsService) GetAdminStats() (*AdminStats, error) {
	stats := &AdminStats{Users: AdminUserStats{ByRole: make(map[string]int64)}}

	if err := models.DB.Model(&models.User{}).Count(&stats.Users.Total).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.User{}).Where("active = ?", true).Count(&stats.Users.Active).Error; err != nil {
		return nil, err
	}
	stats.Users.Inactive = stats.Users.Total - stats.Users.Active

	for role := range models.UserRoles {
		var count int64
		if err := models.DB.Model(&models.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
			return nil, err
		}
		stats.Users.ByRole[role] = count
	}

	if err := models.DB.Model(&models.EmergencyEvent{}).Count(&stats.System.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.OperationalLog{}).Count(&stats.System.TotalLogs).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.InventoryItem{}).Count(&stats.System.TotalInventory).Error; err != nil {
		return nil, err
	}

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	if err := models.DB.Model(&models.EmergencyEvent{}).
		Where("created_at >= ?", sevenDaysAgo).Count(&stats.RecentActivity.EventsLast7Days).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.OperationalLog{}).
		Where("timestamp >= ?", sevenDaysAgo).Count(&stats.RecentActivity.LogsLast7Days).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
