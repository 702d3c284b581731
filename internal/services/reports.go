package services

import (
	"errors"
	"fmt"
	"time"

	"emsys/internal/models"
	"emsys/internal/reports"
)

var (
	ErrUnsupportedReportType = errors.New("unsupported report type")
	ErrUnsupportedFormat     = errors.New("unsupported report format")
)

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// ReportRequest selects the data set, the output format and the filters
// applied before rendering.
type ReportRequest struct {
	ReportType string `json:"report_type" binding:"required"`
	Format     string `json:"format"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	EventType  string `json:"event_type,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Operator   string `json:"operator,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Report is rendered output ready to be served as an attachment.
type Report struct {
	Data        []byte
	Filename    string
	ContentType string
}

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var statisticsOrder = []string{
	"total_events", "open_events", "critical_events",
	"total_logs", "inventory_items", "trained_resources",
}

var statisticsLabels = map[string]string{
	"total_events":      "Total Events",
	"open_events":       "Open Events",
	"critical_events":   "Critical Events",
	"total_logs":        "Operational Logs",
	"inventory_items":   "Inventory Items",
	"trained_resources": "Trained Resources",
}

// Generate renders a report. Unsupported types and formats fail fast before
// touching the database.
func (s *ReportService) Generate(req ReportRequest) (*Report, error) {
	format := req.Format
	if format == "" {
		format = "pdf"
	}
	if format != "pdf" && format != "excel" {
		return nil, ErrUnsupportedFormat
	}

	filters := reports.Filters{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		EventType: req.EventType,
		Severity:  req.Severity,
		Priority:  req.Priority,
		Operator:  req.Operator,
		Status:    req.Status,
	}
	stamp := time.Now().Format("20060102_1504")

	switch req.ReportType {
	case "events":
		events, err := s.queryEvents(req)
		if err != nil {
			return nil, err
		}
		if format == "pdf" {
			data, err := reports.EventsPDF(events, filters)
			if err != nil {
				return nil, err
			}
			return &Report{Data: data, Filename: fmt.Sprintf("events_report_%s.pdf", stamp), ContentType: contentTypePDF}, nil
		}
		data, err := reports.EventsExcel(events)
		if err != nil {
			return nil, err
		}
		return &Report{Data: data, Filename: fmt.Sprintf("events_report_%s.xlsx", stamp), ContentType: contentTypeXLSX}, nil

	case "logs":
		logs, err := s.queryLogs(req)
		if err != nil {
			return nil, err
		}
		if format == "pdf" {
			data, err := reports.LogsPDF(logs, filters)
			if err != nil {
				return nil, err
			}
			return &Report{Data: data, Filename: fmt.Sprintf("logs_report_%s.pdf", stamp), ContentType: contentTypePDF}, nil
		}
		data, err := reports.LogsExcel(logs)
		if err != nil {
			return nil, err
		}
		return &Report{Data: data, Filename: fmt.Sprintf("logs_report_%s.xlsx", stamp), ContentType: contentTypeXLSX}, nil

	case "statistics":
		stats, err := s.queryStatistics()
		if err != nil {
			return nil, err
		}
		if format == "pdf" {
			data, err := reports.StatisticsPDF(stats, statisticsOrder, statisticsLabels)
			if err != nil {
				return nil, err
			}
			return &Report{Data: data, Filename: fmt.Sprintf("statistics_report_%s.pdf", stamp), ContentType: contentTypePDF}, nil
		}
		data, err := reports.StatisticsExcel(stats, statisticsOrder, statisticsLabels)
		if err != nil {
			return nil, err
		}
		return &Report{Data: data, Filename: fmt.Sprintf("statistics_report_%s.xlsx", stamp), ContentType: contentTypeXLSX}, nil

	default:
		return nil, ErrUnsupportedReportType
	}
}

// Templates describes the available report templates and filter options for
// the report UI.
func (s *ReportService) Templates() (map[string]interface{}, error) {
	var operators []string
	if err := models.DB.Model(&models.OperationalLog{}).Distinct("operator").
		Where("operator <> ''").Pluck("operator", &operators).Error; err != nil {
		return nil, err
	}

	var eventTypes []string
	if err := models.DB.Model(&models.EventType{}).Order("name ASC").Pluck("name", &eventTypes).Error; err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"templates": map[string]interface{}{
			"events": map[string]interface{}{
				"name":        "Emergency Events Report",
				"description": "Detailed report of all emergency events",
				"filters":     []string{"start_date", "end_date", "event_type", "severity", "status"},
				"formats":     []string{"pdf", "excel"},
			},
			"logs": map[string]interface{}{
				"name":        "Operational Logs Report",
				"description": "Report of recorded operational activity",
				"filters":     []string{"start_date", "end_date", "priority", "operator"},
				"formats":     []string{"pdf", "excel"},
			},
			"statistics": map[string]interface{}{
				"name":        "General Statistics Report",
				"description": "Aggregate summary of the system",
				"filters":     []string{},
				"formats":     []string{"pdf", "excel"},
			},
		},
		"filter_options": map[string]interface{}{
			"event_types": eventTypes,
			"severities":  []string{models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical},
			"priorities":  []string{models.PriorityLow, models.PriorityNormal, models.PriorityHigh},
			"statuses":    []string{models.EventStatusOpen, models.EventStatusInProgress, models.EventStatusResolved, models.EventStatusClosed},
			"operators":   operators,
		},
	}, nil
}

func (s *ReportService) queryEvents(req ReportRequest) ([]models.EmergencyEvent, error) {
	query := models.DB.Order("created_at DESC")
	if req.EventType != "" {
		query = query.Where("event_type = ?", req.EventType)
	}
	if req.Severity != "" {
		query = query.Where("severity = ?", req.Severity)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if start, ok := parseReportDate(req.StartDate); ok {
		query = query.Where("created_at >= ?", start)
	}
	if end, ok := parseReportDate(req.EndDate); ok {
		query = query.Where("created_at <= ?", end.Add(24*time.Hour-time.Second))
	}

	var events []models.EmergencyEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (s *ReportService) queryLogs(req ReportRequest) ([]models.OperationalLog, error) {
	query := models.DB.Order("timestamp DESC")
	if req.Priority != "" {
		query = query.Where("priority = ?", req.Priority)
	}
	if req.Operator != "" {
		query = query.Where("operator = ?", req.Operator)
	}
	if start, ok := parseReportDate(req.StartDate); ok {
		query = query.Where("timestamp >= ?", start)
	}
	if end, ok := parseReportDate(req.EndDate); ok {
		query = query.Where("timestamp <= ?", end.Add(24*time.Hour-time.Second))
	}

	var logs []models.OperationalLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *ReportService) queryStatistics() (map[string]int64, error) {
	var totalEvents, openEvents, criticalEvents, totalLogs, inventoryItems, trainedResources int64

	if err := models.DB.Model(&models.EmergencyEvent{}).Count(&totalEvents).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.EmergencyEvent{}).
		Where("status = ?", models.EventStatusOpen).Count(&openEvents).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.EmergencyEvent{}).
		Where("severity = ?", models.SeverityCritical).Count(&criticalEvents).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.OperationalLog{}).Count(&totalLogs).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.InventoryItem{}).Count(&inventoryItems).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.TrainedResource{}).Count(&trainedResources).Error; err != nil {
		return nil, err
	}

	return map[string]int64{
		"total_events":      totalEvents,
		"open_events":       openEvents,
		"critical_events":   criticalEvents,
		"total_logs":        totalLogs,
		"inventory_items":   inventoryItems,
		"trained_resources": trainedResources,
	}, nil
}

func parseReportDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
