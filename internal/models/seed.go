package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var defaultEventTypes = []EventType{
	{Name: "fire", Description: "Fires of any nature"},
	{Name: "earthquake", Description: "Seismic events"},
	{Name: "flood", Description: "Floods and inundations"},
	{Name: "avalanche", Description: "Avalanches and snowslides"},
	{Name: "landslide", Description: "Landslides and slope failures"},
	{Name: "road_accident", Description: "Road accidents"},
	{Name: "health_emergency", Description: "Health emergencies"},
	{Name: "environmental_emergency", Description: "Environmental emergencies"},
	{Name: "other", Description: "Other emergency types"},
}

var defaultInventoryCategories = []InventoryCategory{
	{Name: "medical", Description: "Medicines and medical devices", Icon: "🏥"},
	{Name: "equipment", Description: "Equipment and instruments", Icon: "🔧"},
	{Name: "clothing", Description: "Clothing and accessories", Icon: "👕"},
	{Name: "communication", Description: "Communication devices", Icon: "📻"},
	{Name: "food", Description: "Food and beverages", Icon: "🥫"},
	{Name: "safety", Description: "Safety devices", Icon: "🦺"},
	{Name: "transport", Description: "Transport vehicles", Icon: "🚗"},
	{Name: "power", Description: "Generators and power supply", Icon: "⚡"},
	{Name: "tools", Description: "Tools and implements", Icon: "🔨"},
	{Name: "other", Description: "Other categories", Icon: "📦"},
}

// SeedDefaults inserts the default taxonomy entries and the initial system
// log on a fresh database. Existing entries are left untouched, so the call
// is safe on every startup.
func SeedDefaults() error {
	for _, et := range defaultEventTypes {
		var count int64
		if err := DB.Model(&EventType{}).Where("name = ?", et.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		entry := EventType{
			ID:          uuid.NewString(),
			Name:        et.Name,
			Description: et.Description,
			IsDefault:   true,
			CreatedAt:   time.Now(),
			CreatedBy:   "system",
		}
		if err := DB.Create(&entry).Error; err != nil {
			return err
		}
		logrus.WithField("name", et.Name).Debug("seeded default event type")
	}

	for _, cat := range defaultInventoryCategories {
		var count int64
		if err := DB.Model(&InventoryCategory{}).Where("name = ?", cat.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		entry := InventoryCategory{
			ID:          uuid.NewString(),
			Name:        cat.Name,
			Description: cat.Description,
			Icon:        cat.Icon,
			CreatedAt:   time.Now(),
			CreatedBy:   "system",
		}
		if err := DB.Create(&entry).Error; err != nil {
			return err
		}
		logrus.WithField("name", cat.Name).Debug("seeded default inventory category")
	}

	var logCount int64
	if err := DB.Model(&OperationalLog{}).Count(&logCount).Error; err != nil {
		return err
	}
	if logCount == 0 {
		initial := OperationalLog{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Operator:  "system",
			Action:    "System initialization",
			Details:   "Emergency management system initialized: database migrated, default taxonomies seeded.",
			Priority:  PriorityNormal,
		}
		if err := DB.Create(&initial).Error; err != nil {
			return err
		}
	}

	return nil
}
