package models

import (
	"time"
)

// Availability values for trained resources.
const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityUnavailable = "unavailable"
)

// TrainedResource is a trained responder in the personnel directory.
type TrainedResource struct {
	ID              string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	FullName        string     `json:"full_name" gorm:"type:varchar(255);not null;index"`
	Role            string     `json:"role" gorm:"type:varchar(255)"`
	Specializations []string   `json:"specializations" gorm:"serializer:json"`
	ContactPhone    string     `json:"contact_phone" gorm:"type:varchar(50)"`
	ContactEmail    string     `json:"contact_email" gorm:"type:varchar(255)"`
	Availability    string     `json:"availability" gorm:"type:varchar(20);index"`
	Location        string     `json:"location,omitempty" gorm:"type:varchar(255)"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
