package sitecmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldworks/sitecmd/internal/core/audit"
	"github.com/fieldworks/sitecmd/internal/core/calendar"
	"github.com/fieldworks/sitecmd/internal/core/diary"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/project"
)

// reportAuditLimit caps the change-history rows gathered per project.
const reportAuditLimit = 200

// Report is a point-in-time snapshot of tracked work, optionally
// scoped to one project. The export package turns it into files.
type Report struct {
	GeneratedAt time.Time
	Projects    []project.Project
	Items       []item.Item
	Logs        []diary.Log
	Notes       []calendar.Note
	Audits      []audit.Row
}

// ProjectName resolves an item's project for display, defaulting to
// "Unknown" for unassigned items.
func (r Report) ProjectName(projectID string) string {
	for _, p := range r.Projects {
		if p.ID == projectID {
			return p.Name
		}
	}
	return "Unknown"
}

// ReportService assembles export snapshots from the stores.
type ReportService struct {
	projects project.Store
	items    item.Store
	logs     diary.Store
	notes    calendar.Store
	audits   audit.Store
	log      zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(projects project.Store, items item.Store, logs diary.Store, notes calendar.Store, audits audit.Store, log zerolog.Logger) *ReportService {
	return &ReportService{
		projects: projects,
		items:    items,
		logs:     logs,
		notes:    notes,
		audits:   audits,
		log:      log.With().Str("component", "report-service").Logger(),
	}
}

// Snapshot gathers all tracked data, scoped to one project when
// projectID is non-empty.
func (s *ReportService) Snapshot(ctx context.Context, projectID string) (Report, error) {
	r := Report{GeneratedAt: time.Now()}

	if projectID != "" {
		p, err := s.projects.Get(ctx, projectID)
		if err != nil {
			return Report{}, err
		}
		r.Projects = []project.Project{p}
	} else {
		projects, err := s.projects.List(ctx, project.ListFilter{})
		if err != nil {
			return Report{}, fmt.Errorf("snapshot projects: %w", err)
		}
		r.Projects = projects
	}

	items, err := s.items.List(ctx, item.ListFilter{ProjectID: projectID})
	if err != nil {
		return Report{}, fmt.Errorf("snapshot items: %w", err)
	}
	r.Items = items

	logs, err := s.logs.List(ctx, diary.ListFilter{ProjectID: projectID})
	if err != nil {
		return Report{}, fmt.Errorf("snapshot logs: %w", err)
	}
	r.Logs = logs

	notes, err := s.notes.List(ctx, calendar.ListFilter{ProjectID: projectID})
	if err != nil {
		return Report{}, fmt.Errorf("snapshot notes: %w", err)
	}
	r.Notes = notes

	// Change history for the items in scope, gathered per project.
	// Audit rows of unassigned items have no project to key on and
	// stay reachable through 'item history' instead.
	for _, p := range r.Projects {
		rows, err := s.audits.ListForProject(ctx, p.ID, reportAuditLimit)
		if err != nil {
			return Report{}, fmt.Errorf("snapshot audit trail: %w", err)
		}
		r.Audits = append(r.Audits, rows...)
	}

	return r, nil
}
