package services

import (
	"errors"
	"fmt"
	"time"

	"emsys/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type EventService struct {
	logService *LogService
}

func NewEventService() *EventService {
	return &EventService{logService: NewLogService()}
}

// EventUpdateData carries the partial update for an event. Nil fields are
// left untouched.
type EventUpdateData struct {
	Title           *string
	Description     *string
	EventType       *string
	Severity        *string
	Status          *string
	Latitude        *float64
	Longitude       *float64
	Address         *string
	ResourcesNeeded []string
	Notes           *string
}

// MapFilter narrows the map query. An empty Status defaults to the active
// pair {open, in_progress}; the literal "active" is sugar for the same pair.
type MapFilter struct {
	Status    string
	EventType string
	Severity  string
}

func (s *EventService) CreateEvent(event *models.EmergencyEvent, createdBy string) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = models.EventStatusOpen
	}
	if event.ResourcesNeeded == nil {
		event.ResourcesNeeded = []string{}
	}
	event.CreatedAt = time.Now()
	event.CreatedBy = createdBy
	return models.DB.Create(event).Error
}

func (s *EventService) GetEvents() ([]models.EmergencyEvent, error) {
	var events []models.EmergencyEvent
	if err := models.DB.Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventService) GetEvent(id string) (*models.EmergencyEvent, error) {
	var event models.EmergencyEvent
	if err := models.DB.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetMapEvents returns events that carry both coordinates, filtered for map
// display.
func (s *EventService) GetMapEvents(filter MapFilter) ([]models.EmergencyEvent, error) {
	query := models.DB.Where("latitude IS NOT NULL AND longitude IS NOT NULL")

	switch filter.Status {
	case "", "active":
		query = query.Where("status IN ?", []string{models.EventStatusOpen, models.EventStatusInProgress})
	default:
		query = query.Where("status = ?", filter.Status)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}

	var events []models.EmergencyEvent
	if err := query.Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent applies a partial update, stamps the audit fields and appends
// an operational log entry.
func (s *EventService) UpdateEvent(id string, data EventUpdateData, updatedBy string) error {
	existing, err := s.GetEvent(id)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if data.Title != nil {
		updates["title"] = *data.Title
	}
	if data.Description != nil {
		updates["description"] = *data.Description
	}
	if data.EventType != nil {
		updates["event_type"] = *data.EventType
	}
	if data.Severity != nil {
		updates["severity"] = *data.Severity
	}
	if data.Status != nil {
		updates["status"] = *data.Status
	}
	if data.Latitude != nil {
		updates["latitude"] = *data.Latitude
	}
	if data.Longitude != nil {
		updates["longitude"] = *data.Longitude
	}
	if data.Address != nil {
		updates["address"] = *data.Address
	}
	if data.Notes != nil {
		updates["notes"] = *data.Notes
	}
	updates["updated_at"] = time.Now()
	updates["updated_by"] = updatedBy

	tx := models.DB.Model(&models.EmergencyEvent{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if data.ResourcesNeeded != nil {
		if err := models.DB.Model(&models.EmergencyEvent{}).Where("id = ?", id).
			Update("resources_needed", data.ResourcesNeeded).Error; err != nil {
			return err
		}
	}

	s.logService.Record(updatedBy,
		fmt.Sprintf("Event updated: %s", existing.Title),
		fmt.Sprintf("Event updated with new data. ID: %s", id),
		models.PriorityNormal, id)

	return nil
}

// DeleteEvent removes an event and appends a high-priority log entry.
func (s *EventService) DeleteEvent(id string, deletedBy string) error {
	existing, err := s.GetEvent(id)
	if err != nil {
		return err
	}

	if err := models.DB.Where("id = ?", id).Delete(&models.EmergencyEvent{}).Error; err != nil {
		return err
	}

	s.logService.Record(deletedBy,
		fmt.Sprintf("Event deleted: %s", existing.Title),
		fmt.Sprintf("Event removed from the system. ID: %s", id),
		models.PriorityHigh, "")

	return nil
}
