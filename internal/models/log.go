package models

import (
	"time"
)

// Log priority values.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// OperationalLog is an append-only record of an operator action. Selected
// repository mutations synthesize one as a side effect.
type OperationalLog struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	Operator  string    `json:"operator" gorm:"type:varchar(255);index"`
	Action    string    `json:"action" gorm:"type:varchar(255);not null"`
	Details   string    `json:"details" gorm:"type:text"`
	EventID   string    `json:"event_id,omitempty" gorm:"type:varchar(36)"`
	Priority  string    `json:"priority" gorm:"type:varchar(20);index"`
}
