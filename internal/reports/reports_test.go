package reports

import (
	"testing"
	"time"

	"emsys/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []models.EmergencyEvent {
	lat, long := 45.07, 7.69
	updated := time.Now()
	return []models.EmergencyEvent{
		{
			ID:        "evt-1",
			Title:     "Flooding near river",
			EventType: "flood",
			Severity:  "high",
			Status:    "open",
			Latitude:  &lat,
			Longitude: &long,
			CreatedAt: time.Now().Add(-2 * time.Hour),
			CreatedBy: "operator",
			UpdatedAt: &updated,
		},
		{
			ID:        "evt-2",
			Title:     "A title long enough that the table cell truncates it somewhere sensible",
			EventType: "fire",
			Severity:  "critical",
			Status:    "in_progress",
			CreatedAt: time.Now().Add(-time.Hour),
			CreatedBy: "operator",
		},
	}
}

func sampleLogs() []models.OperationalLog {
	return []models.OperationalLog{
		{
			ID:        "log-1",
			Timestamp: time.Now(),
			Operator:  "operator",
			Action:    "Radio check",
			Details:   "All units responding",
			Priority:  "normal",
		},
	}
}

func TestEventsPDF(t *testing.T) {
	data, err := EventsPDF(sampleEvents(), Filters{Severity: "high"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestEventsPDFEmpty(t *testing.T) {
	data, err := EventsPDF(nil, Filters{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestLogsPDF(t *testing.T) {
	data, err := LogsPDF(sampleLogs(), Filters{Operator: "operator"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestStatisticsPDF(t *testing.T) {
	stats := map[string]int64{"total_events": 2, "open_events": 1}
	order := []string{"total_events", "open_events"}
	labels := map[string]string{"total_events": "Total Events", "open_events": "Open Events"}

	data, err := StatisticsPDF(stats, order, labels)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestEventsExcel(t *testing.T) {
	data, err := EventsExcel(sampleEvents())
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.Equal(t, "PK", string(data[:2]))
}

func TestLogsExcel(t *testing.T) {
	data, err := LogsExcel(sampleLogs())
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))
}

func TestStatisticsExcel(t *testing.T) {
	stats := map[string]int64{"total_events": 2}
	data, err := StatisticsExcel(stats, []string{"total_events"}, map[string]string{"total_events": "Total Events"})
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a very lon...", truncate("a very long string that exceeds the limit", 10))
}
