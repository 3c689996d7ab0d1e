// Package export writes report snapshots to CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fieldworks/sitecmd/internal/sitecmd"
)

// ToCSV writes the report's action items to a CSV file.
func ToCSV(r sitecmd.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{"ID", "Project", "Title", "Details", "Category", "Priority", "Status", "Due Date", "Defer Until", "Completed At", "Created At"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, it := range r.Items {
		completed := ""
		if it.CompletedAt != nil {
			completed = it.CompletedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			it.ID,
			r.ProjectName(it.ProjectID),
			it.Title,
			it.Details,
			it.Category,
			string(it.Priority),
			string(it.Status),
			it.DueDate,
			it.DeferUntil,
			completed,
			it.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// LogsToCSV writes the report's daily logs to a CSV file.
func LogsToCSV(r sitecmd.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"ID", "Project", "Date", "Weather", "Conditions", "Notes", "Safety Incidents", "Priority"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, l := range r.Logs {
		site := l.SiteName
		if site == "" {
			site = r.ProjectName(l.ProjectID)
		}

		row := []string{
			l.ID,
			site,
			l.LogDate,
			l.Weather,
			l.Conditions,
			l.Notes,
			strconv.Itoa(l.SafetyIncidents),
			l.Priority,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
