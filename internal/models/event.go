package models

import (
	"time"
)

// Event status values.
const (
	EventStatusOpen       = "open"
	EventStatusInProgress = "in_progress"
	EventStatusResolved   = "resolved"
	EventStatusClosed     = "closed"
)

// Event severity values.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

type EmergencyEvent struct {
	ID              string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Title           string     `json:"title" gorm:"type:varchar(255);not null"`
	Description     string     `json:"description" gorm:"type:text"`
	EventType       string     `json:"event_type" gorm:"type:varchar(100);index"`
	Severity        string     `json:"severity" gorm:"type:varchar(20);index"`
	Status          string     `json:"status" gorm:"type:varchar(20);index"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	Address         string     `json:"address,omitempty" gorm:"type:varchar(500)"`
	CreatedAt       time.Time  `json:"created_at" gorm:"index"`
	CreatedBy       string     `json:"created_by" gorm:"type:varchar(255)"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	UpdatedBy       string     `json:"updated_by,omitempty" gorm:"type:varchar(255)"`
	ResourcesNeeded []string   `json:"resources_needed" gorm:"serializer:json"`
	Notes           string     `json:"notes,omitempty" gorm:"type:text"`
}

// EventType is a taxonomy entry for emergency events. Entries seeded at
// first run carry is_default and cannot be deleted.
type EventType struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by" gorm:"type:varchar(255)"`
}
