package reports

import (
	"fmt"

	"emsys/internal/models"

	"github.com/xuri/excelize/v2"
)

// Filters carries the caller-supplied report filters, echoed in report
// headers.
type Filters struct {
	StartDate string
	EndDate   string
	EventType string
	Severity  string
	Priority  string
	Operator  string
	Status    string
}

// EventsExcel renders the emergency events report as a spreadsheet.
func EventsExcel(events []models.EmergencyEvent) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Emergency Events"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Title", "Type", "Severity", "Status", "Created At", "Created By", "Address", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, e := range events {
		values := []interface{}{
			e.Title, e.EventType, e.Severity, e.Status,
			e.CreatedAt.Format(dateTimeLayout), e.CreatedBy, e.Address, e.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LogsExcel renders the operational logs report as a spreadsheet.
func LogsExcel(logs []models.OperationalLog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Operational Logs"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Action", "Priority", "Operator", "Timestamp", "Details", "Event ID"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, l := range logs {
		values := []interface{}{
			l.Action, l.Priority, l.Operator,
			l.Timestamp.Format(dateTimeLayout), l.Details, l.EventID,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StatisticsExcel renders the aggregate statistics as a spreadsheet.
func StatisticsExcel(stats map[string]int64, order []string, labels map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Statistics"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheet, "A1", "Category"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "B1", "Value"); err != nil {
		return nil, err
	}

	for i, key := range order {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), labels[key]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), stats[key]); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
