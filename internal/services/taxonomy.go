package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"emsys/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaxonomyNotFound   = errors.New("taxonomy entry not found")
	ErrTaxonomyNameTaken  = errors.New("name already in use")
	ErrTaxonomyIsDefault  = errors.New("default entries cannot be deleted")
	ErrTaxonomyReferenced = errors.New("entry is referenced")
)

// ReferencedError reports how many documents still reference a taxonomy
// entry that a caller tried to delete.
type ReferencedError struct {
	Count int64
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("entry is referenced by %d documents", e.Count)
}

func (e *ReferencedError) Unwrap() error { return ErrTaxonomyReferenced }

// TaxonomyService manages event types and inventory categories. Names are
// stored lowercased and are unique within each taxonomy.
type TaxonomyService struct {
	logService *LogService
}

func NewTaxonomyService() *TaxonomyService {
	return &TaxonomyService{logService: NewLogService()}
}

func (s *TaxonomyService) GetEventTypes() ([]models.EventType, error) {
	var types []models.EventType
	if err := models.DB.Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *TaxonomyService) CreateEventType(name, description, createdBy string) (*models.EventType, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var existing models.EventType
	if err := models.DB.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrTaxonomyNameTaken
	}

	entry := &models.EventType{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		IsDefault:   false,
		CreatedAt:   time.Now(),
		CreatedBy:   createdBy,
	}
	if err := models.DB.Create(entry).Error; err != nil {
		return nil, err
	}

	s.logService.Record(createdBy,
		fmt.Sprintf("Event type created: %s", name),
		fmt.Sprintf("New event type '%s' added to the system", name),
		models.PriorityNormal, "")

	return entry, nil
}

func (s *TaxonomyService) UpdateEventType(id, name, description, updatedBy string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	var existing models.EventType
	if err := models.DB.Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaxonomyNotFound
		}
		return err
	}

	var conflict models.EventType
	if err := models.DB.Where("name = ? AND id <> ?", name, id).First(&conflict).Error; err == nil {
		return ErrTaxonomyNameTaken
	}

	if err := models.DB.Model(&models.EventType{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        name,
		"description": description,
	}).Error; err != nil {
		return err
	}

	s.logService.Record(updatedBy,
		fmt.Sprintf("Event type updated: %s", name),
		fmt.Sprintf("Event type renamed from '%s' to '%s'", existing.Name, name),
		models.PriorityNormal, "")

	return nil
}

// DeleteEventType removes a non-default event type that no event references.
// The reference check and the delete are separate statements; a concurrent
// event creation naming the type can slip between them.
func (s *TaxonomyService) DeleteEventType(id, deletedBy string) error {
	var existing models.EventType
	if err := models.DB.Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaxonomyNotFound
		}
		return err
	}

	if existing.IsDefault {
		return ErrTaxonomyIsDefault
	}

	var refs int64
	if err := models.DB.Model(&models.EmergencyEvent{}).Where("event_type = ?", existing.Name).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return &ReferencedError{Count: refs}
	}

	if err := models.DB.Where("id = ?", id).Delete(&models.EventType{}).Error; err != nil {
		return err
	}

	s.logService.Record(deletedBy,
		fmt.Sprintf("Event type deleted: %s", existing.Name),
		fmt.Sprintf("Event type '%s' removed from the system", existing.Name),
		models.PriorityHigh, "")

	return nil
}

func (s *TaxonomyService) GetInventoryCategories() ([]models.InventoryCategory, error) {
	var categories []models.InventoryCategory
	if err := models.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *TaxonomyService) CreateInventoryCategory(name, description, icon, createdBy string) (*models.InventoryCategory, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var existing models.InventoryCategory
	if err := models.DB.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrTaxonomyNameTaken
	}

	if icon == "" {
		icon = "📦"
	}
	entry := &models.InventoryCategory{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Icon:        icon,
		CreatedAt:   time.Now(),
		CreatedBy:   createdBy,
	}
	if err := models.DB.Create(entry).Error; err != nil {
		return nil, err
	}

	s.logService.Record(createdBy,
		fmt.Sprintf("Inventory category created: %s", name),
		fmt.Sprintf("New category '%s' added to the inventory", name),
		models.PriorityNormal, "")

	return entry, nil
}

func (s *TaxonomyService) UpdateInventoryCategory(id, name, description, icon, updatedBy string) error {
	name = strings.ToLower(strings.TrimSpace(name))

	var existing models.InventoryCategory
	if err := models.DB.Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaxonomyNotFound
		}
		return err
	}

	var conflict models.InventoryCategory
	if err := models.DB.Where("name = ? AND id <> ?", name, id).First(&conflict).Error; err == nil {
		return ErrTaxonomyNameTaken
	}

	if icon == "" {
		icon = existing.Icon
	}
	if err := models.DB.Model(&models.InventoryCategory{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        name,
		"description": description,
		"icon":        icon,
	}).Error; err != nil {
		return err
	}

	s.logService.Record(updatedBy,
		fmt.Sprintf("Inventory category updated: %s", name),
		fmt.Sprintf("Category renamed from '%s' to '%s'", existing.Name, name),
		models.PriorityNormal, "")

	return nil
}

// DeleteInventoryCategory removes a category that no inventory item
// references. Seeded categories are protected the same way default event
// types are.
func (s *TaxonomyService) DeleteInventoryCategory(id, deletedBy string) error {
	var existing models.InventoryCategory
	if err := models.DB.Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaxonomyNotFound
		}
		return err
	}

	if existing.CreatedBy == "system" {
		return ErrTaxonomyIsDefault
	}

	var refs int64
	if err := models.DB.Model(&models.InventoryItem{}).Where("category = ?", existing.Name).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return &ReferencedError{Count: refs}
	}

	if err := models.DB.Where("id = ?", id).Delete(&models.InventoryCategory{}).Error; err != nil {
		return err
	}

	s.logService.Record(deletedBy,
		fmt.Sprintf("Inventory category deleted: %s", existing.Name),
		fmt.Sprintf("Category '%s' removed from the inventory", existing.Name),
		models.PriorityHigh, "")

	return nil
}
