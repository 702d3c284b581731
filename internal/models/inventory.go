package models

import (
	"time"
)

type InventoryItem struct {
	ID            string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name          string     `json:"name" gorm:"type:varchar(255);not null;index"`
	Category      string     `json:"category" gorm:"type:varchar(100);index"`
	Quantity      int        `json:"quantity"`
	Unit          string     `json:"unit" gorm:"type:varchar(50)"`
	Location      string     `json:"location" gorm:"type:varchar(255);index"`
	MinQuantity   int        `json:"min_quantity"`
	MaxQuantity   *int       `json:"max_quantity,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty" gorm:"index"`
	Supplier      string     `json:"supplier,omitempty" gorm:"type:varchar(255)"`
	CostPerUnit   *float64   `json:"cost_per_unit,omitempty"`
	Notes         string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	LastUpdatedBy string     `json:"last_updated_by,omitempty" gorm:"type:varchar(255)"`
}

type InventoryCategory struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Icon        string    `json:"icon,omitempty" gorm:"type:varchar(20)"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by" gorm:"type:varchar(255)"`
}
