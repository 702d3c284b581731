package reports

import (
	"bytes"
	"fmt"
	"time"

	"emsys/internal/models"

	"github.com/go-pdf/fpdf"
)

const dateLayout = "02/01/2006"
const dateTimeLayout = "02/01/2006 15:04"

func newReportPDF(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format(dateTimeLayout)), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	return pdf
}

func tableHeader(pdf *fpdf.Fpdf, widths []float64, headers []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(245, 245, 220)
	pdf.SetTextColor(0, 0, 0)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// EventsPDF renders the emergency events report.
func EventsPDF(events []models.EmergencyEvent, filters Filters) ([]byte, error) {
	pdf := newReportPDF("EMERGENCY EVENTS REPORT")

	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", orAll(filters.StartDate), orAll(filters.EndDate)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Filters: type %s, severity %s", orAll(filters.EventType), orAll(filters.Severity)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total events: %d", len(events)), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	if len(events) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, "No events found for the given filters.", "", 1, "L", false, 0, "")
	} else {
		widths := []float64{55, 28, 22, 24, 26, 35}
		tableHeader(pdf, widths, []string{"Title", "Type", "Severity", "Status", "Date", "Operator"})
		for _, e := range events {
			pdf.CellFormat(widths[0], 7, truncate(e.Title, 30), "1", 0, "L", true, 0, "")
			pdf.CellFormat(widths[1], 7, e.EventType, "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[2], 7, e.Severity, "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[3], 7, e.Status, "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[4], 7, e.CreatedAt.Format(dateLayout), "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[5], 7, truncate(e.CreatedBy, 20), "1", 0, "C", true, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LogsPDF renders the operational logs report.
func LogsPDF(logs []models.OperationalLog, filters Filters) ([]byte, error) {
	pdf := newReportPDF("OPERATIONAL LOGS REPORT")

	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", orAll(filters.StartDate), orAll(filters.EndDate)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Filters: priority %s, operator %s", orAll(filters.Priority), orAll(filters.Operator)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total logs: %d", len(logs)), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	if len(logs) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 8, "No logs found for the given filters.", "", 1, "L", false, 0, "")
	} else {
		widths := []float64{40, 20, 28, 32, 70}
		tableHeader(pdf, widths, []string{"Action", "Priority", "Operator", "Date", "Details"})
		for _, l := range logs {
			pdf.CellFormat(widths[0], 7, truncate(l.Action, 25), "1", 0, "L", true, 0, "")
			pdf.CellFormat(widths[1], 7, l.Priority, "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[2], 7, truncate(l.Operator, 16), "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[3], 7, l.Timestamp.Format(dateTimeLayout), "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[4], 7, truncate(l.Details, 40), "1", 0, "L", true, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StatisticsPDF renders the aggregate statistics report.
func StatisticsPDF(stats map[string]int64, order []string, labels map[string]string) ([]byte, error) {
	pdf := newReportPDF("GENERAL STATISTICS REPORT")

	widths := []float64{90, 50}
	tableHeader(pdf, widths, []string{"Category", "Value"})
	pdf.SetFont("Helvetica", "", 10)
	for _, key := range order {
		pdf.CellFormat(widths[0], 8, labels[key], "1", 0, "L", true, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", stats[key]), "1", 0, "C", true, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
