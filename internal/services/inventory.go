package services

import (
	"errors"
	"fmt"
	"time"

	"emsys/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound    = errors.New("inventory item not found")
	ErrInvalidQuantity = errors.New("quantity cannot be negative")
)

// expiryWindow is the look-ahead for the expiring-soon queries.
const expiryWindow = 30 * 24 * time.Hour

type InventoryService struct {
	logService *LogService
}

func NewInventoryService() *InventoryService {
	return &InventoryService{logService: NewLogService()}
}

// InventoryFilter narrows the inventory listing.
type InventoryFilter struct {
	Category     string
	Location     string
	LowStock     bool
	ExpiringSoon bool
}

func (s *InventoryService) CreateItem(item *models.InventoryItem, createdBy string) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Quantity < 0 {
		return ErrInvalidQuantity
	}
	item.CreatedAt = time.Now()
	item.LastUpdatedBy = createdBy
	return models.DB.Create(item).Error
}

// GetItems lists inventory items sorted by name. Low stock is the strict
// comparison quantity < min_quantity, the same operator used by the alert
// and dashboard counts.
func (s *InventoryService) GetItems(filter InventoryFilter) ([]models.InventoryItem, error) {
	query := models.DB.Order("name ASC")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.LowStock {
		query = query.Where("quantity < min_quantity")
	}
	if filter.ExpiringSoon {
		query = query.Where("expiry_date IS NOT NULL AND expiry_date <= ?", time.Now().Add(expiryWindow))
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryService) GetItem(id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := models.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) UpdateItem(id string, item *models.InventoryItem, updatedBy string) error {
	if item.Quantity < 0 {
		return ErrInvalidQuantity
	}
	now := time.Now()
	item.ID = id
	item.UpdatedAt = &now
	item.LastUpdatedBy = updatedBy

	tx := models.DB.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":            item.Name,
		"category":        item.Category,
		"quantity":        item.Quantity,
		"unit":            item.Unit,
		"location":        item.Location,
		"min_quantity":    item.MinQuantity,
		"max_quantity":    item.MaxQuantity,
		"expiry_date":     item.ExpiryDate,
		"supplier":        item.Supplier,
		"cost_per_unit":   item.CostPerUnit,
		"notes":           item.Notes,
		"updated_at":      now,
		"last_updated_by": updatedBy,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *InventoryService) DeleteItem(id string) error {
	tx := models.DB.Where("id = ?", id).Delete(&models.InventoryItem{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// UpdateQuantity applies a signed delta to an item's quantity. The update is
// a single conditional UPDATE guarded against driving the quantity negative,
// so concurrent deltas on the same item cannot lose each other. The accepted
// change is recorded in the operational log with the caller's reason.
func (s *InventoryService) UpdateQuantity(id string, delta int, reason, location, updatedBy string) (int, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return 0, err
	}

	updates := map[string]interface{}{
		"quantity":        gorm.Expr("quantity + ?", delta),
		"updated_at":      time.Now(),
		"last_updated_by": updatedBy,
	}
	if location != "" {
		updates["location"] = location
	}

	tx := models.DB.Model(&models.InventoryItem{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(updates)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, ErrInvalidQuantity
	}

	updated, err := s.GetItem(id)
	if err != nil {
		return 0, err
	}

	sign := ""
	if delta > 0 {
		sign = "+"
	}
	s.logService.Record(updatedBy,
		fmt.Sprintf("Inventory update: %s", item.Name),
		fmt.Sprintf("%s. Quantity: %d → %d (%s%d)", reason, item.Quantity, updated.Quantity, sign, delta),
		models.PriorityNormal, "")

	return updated.Quantity, nil
}

// InventoryAlerts bundles the low stock and expiring-soon lists.
type InventoryAlerts struct {
	LowStockItems []models.InventoryItem `json:"low_stock_items"`
	ExpiringItems []models.InventoryItem `json:"expiring_items"`
	TotalAlerts   int                    `json:"total_alerts"`
}

// GetAlerts returns items below their minimum quantity and items expiring
// within the next 30 days.
func (s *InventoryService) GetAlerts() (*InventoryAlerts, error) {
	var lowStock []models.InventoryItem
	if err := models.DB.Where("quantity < min_quantity").Find(&lowStock).Error; err != nil {
		return nil, err
	}

	var expiring []models.InventoryItem
	if err := models.DB.Where("expiry_date IS NOT NULL AND expiry_date <= ?", time.Now().Add(expiryWindow)).
		Find(&expiring).Error; err != nil {
		return nil, err
	}

	return &InventoryAlerts{
		LowStockItems: lowStock,
		ExpiringItems: expiring,
		TotalAlerts:   len(lowStock) + len(expiring),
	}, nil
}

// GetCategories returns the distinct category values in use.
func (s *InventoryService) GetCategories() ([]string, error) {
	var categories []string
	if err := models.DB.Model(&models.InventoryItem{}).Distinct("category").
		Where("category <> ''").Order("category ASC").Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetLocations returns the distinct location values in use.
func (s *InventoryService) GetLocations() ([]string, error) {
	var locations []string
	if err := models.DB.Model(&models.InventoryItem{}).Distinct("location").
		Where("location <> ''").Order("location ASC").Pluck("location", &locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
