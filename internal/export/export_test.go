package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitecmd/internal/core/audit"
	"github.com/fieldworks/sitecmd/internal/core/diary"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/project"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
)

func sampleReport() sitecmd.Report {
	completed := time.Date(2024, 6, 14, 16, 30, 0, 0, time.UTC)
	return sitecmd.Report{
		GeneratedAt: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
		Projects: []project.Project{
			{ID: "p1", Name: "Quarry Road", JobNumber: "J-42"},
		},
		Items: []item.Item{
			{
				ID:        "i1",
				ProjectID: "p1",
				Title:     "Repair guard rail",
				Priority:  item.PriorityHigh,
				Status:    item.StatusOpen,
				DueDate:   "2024-06-20",
				CreatedAt: time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
			},
			{
				ID:          "i2",
				Title:       "File permit",
				Priority:    item.PriorityMedium,
				Status:      item.StatusDone,
				CompletedAt: &completed,
				CreatedAt:   time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC),
			},
		},
		Logs: []diary.Log{
			{
				ID:              "l1",
				ProjectID:       "p1",
				LogDate:         "2024-06-15",
				Weather:         "rain",
				SafetyIncidents: 1,
			},
		},
		Audits: []audit.Row{
			{
				ID:           1,
				Action:       audit.ActionInsert,
				ActionItemID: "i1",
				ChangedAt:    time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, ToCSV(sampleReport(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two items")

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Project", rows[0][1])

	assert.Equal(t, "Quarry Road", rows[1][1])
	assert.Equal(t, "Repair guard rail", rows[1][2])
	assert.Equal(t, "high", rows[1][5])
	assert.Equal(t, "2024-06-20", rows[1][7])

	assert.Equal(t, "Unknown", rows[2][1], "unassigned items fall back to Unknown")
	assert.NotEmpty(t, rows[2][9], "completed items carry a timestamp")
}

func TestLogsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	require.NoError(t, LogsToCSV(sampleReport(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Quarry Road", rows[1][1], "site name resolved through the report")
	assert.Equal(t, "2024-06-15", rows[1][2])
	assert.Equal(t, "rain", rows[1][3])
	assert.Equal(t, "1", rows[1][6])
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, ToJSON(sampleReport(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "2024-06-15T09:00:00Z", got["exported_at"])
	assert.EqualValues(t, 2, got["item_count"])

	items, ok := got["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Quarry Road", first["project"])
	assert.Equal(t, "Repair guard rail", first["title"])

	second, ok := items[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Unknown", second["project"])
	assert.NotEmpty(t, second["completed_at"])

	trail, ok := got["audit_trail"].([]any)
	require.True(t, ok, "the export carries the change history")
	require.Len(t, trail, 1)
	entry, ok := trail[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "insert", entry["action"])
	assert.Equal(t, "i1", entry["action_item_id"])
}
