package services

import (
	"time"

	"emsys/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type LogService struct{}

func NewLogService() *LogService {
	return &LogService{}
}

// Record appends an operational log entry. Writes are best-effort: a failure
// is logged and never propagated, so it cannot fail the parent mutation.
func (s *LogService) Record(operator, action, details, priority, eventID string) {
	entry := models.OperationalLog{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Operator:  operator,
		Action:    action,
		Details:   details,
		EventID:   eventID,
		Priority:  priority,
	}
	if err := models.DB.Create(&entry).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"operator": operator,
			"action":   action,
		}).Error("failed to write operational log entry")
	}
}

// CreateLog stores an operator-submitted log entry.
func (s *LogService) CreateLog(log *models.OperationalLog, operator string) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	if log.Priority == "" {
		log.Priority = models.PriorityNormal
	}
	log.Operator = operator
	return models.DB.Create(log).Error
}

// GetLogs returns the 100 most recent log entries, newest first.
func (s *LogService) GetLogs() ([]models.OperationalLog, error) {
	var logs []models.OperationalLog
	if err := models.DB.Order("timestamp DESC").Limit(100).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
