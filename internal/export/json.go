package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fieldworks/sitecmd/internal/core/audit"
	"github.com/fieldworks/sitecmd/internal/core/calendar"
	"github.com/fieldworks/sitecmd/internal/core/diary"
	"github.com/fieldworks/sitecmd/internal/core/project"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
)

type jsonExport struct {
	ExportedAt string            `json:"exported_at"`
	ItemCount  int               `json:"item_count"`
	Projects   []project.Project `json:"projects"`
	Items      []jsonItem        `json:"items"`
	Logs       []diary.Log       `json:"logs,omitempty"`
	Notes      []calendar.Note   `json:"notes,omitempty"`
	AuditTrail []audit.Row       `json:"audit_trail,omitempty"`
}

type jsonItem struct {
	ID          string `json:"id"`
	Project     string `json:"project"`
	ProjectID   string `json:"project_id,omitempty"`
	Title       string `json:"title"`
	Details     string `json:"details,omitempty"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date,omitempty"`
	DeferUntil  string `json:"defer_until,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ToJSON writes the full report snapshot to a JSON file.
func ToJSON(r sitecmd.Report, path string) error {
	export := jsonExport{
		ExportedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
		ItemCount:  len(r.Items),
		Projects:   r.Projects,
		Logs:       r.Logs,
		Notes:      r.Notes,
		AuditTrail: r.Audits,
	}

	for _, it := range r.Items {
		completed := ""
		if it.CompletedAt != nil {
			completed = it.CompletedAt.Local().Format(time.RFC3339)
		}

		export.Items = append(export.Items, jsonItem{
			ID:          it.ID,
			Project:     r.ProjectName(it.ProjectID),
			ProjectID:   it.ProjectID,
			Title:       it.Title,
			Details:     it.Details,
			Category:    it.Category,
			Priority:    string(it.Priority),
			Status:      string(it.Status),
			DueDate:     it.DueDate,
			DeferUntil:  it.DeferUntil,
			CompletedAt: completed,
			CreatedAt:   it.CreatedAt.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
