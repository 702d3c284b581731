package services

import (
	"time"

	"emsys/internal/models"

	"github.com/google/uuid"
)

type ResourceService struct{}

func NewResourceService() *ResourceService {
	return &ResourceService{}
}

// CreateResource adds a trained responder to the directory.
func (s *ResourceService) CreateResource(resource *models.TrainedResource) error {
	if resource.ID == "" {
		resource.ID = uuid.NewString()
	}
	if resource.Availability == "" {
		resource.Availability = models.AvailabilityAvailable
	}
	if resource.Specializations == nil {
		resource.Specializations = []string{}
	}
	resource.CreatedAt = time.Now()
	return models.DB.Create(resource).Error
}

// GetResources lists the directory sorted by full name.
func (s *ResourceService) GetResources() ([]models.TrainedResource, error) {
	var resources []models.TrainedResource
	if err := models.DB.Order("full_name ASC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}
