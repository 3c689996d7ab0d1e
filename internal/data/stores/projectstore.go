package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldworks/sitecmd/internal/core/project"
	"github.com/fieldworks/sitecmd/internal/data/db"
)

const projectColumns = "id, name, status, job_number, location, client, created_at, updated_at"

// ProjectStore implements project.Store using SQLite.
type ProjectStore struct {
	db *db.DB
}

var _ project.Store = (*ProjectStore)(nil)

// NewProjectStore creates a new SQLite-backed project store.
func NewProjectStore(db *db.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create persists a new project, filling in ID, status, and timestamps
// when unset.
func (s *ProjectStore) Create(ctx context.Context, p *project.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = project.StatusActive
	}

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO projects (id, name, status, job_number, location, client, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Status), p.JobNumber, p.Location, p.Client,
		fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Get returns a single project by ID.
func (s *ProjectStore) Get(ctx context.Context, id string) (project.Project, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)

	p, err := scanProject(row)
	if err != nil {
		if IsNotFoundError(err) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List returns projects matching the filter, newest first.
func (s *ProjectStore) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects"
	var args []any
	if filter.Status != "" {
		query += " WHERE status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update applies a partial field update and returns the result.
func (s *ProjectStore) Update(ctx context.Context, id string, fields project.Fields) (project.Project, error) {
	var set []string
	var args []any
	add := func(clause string, v any) {
		set = append(set, clause)
		args = append(args, v)
	}

	if fields.Name != nil {
		add("name = ?", *fields.Name)
	}
	if fields.Status != nil {
		add("status = ?", string(*fields.Status))
	}
	if fields.JobNumber != nil {
		add("job_number = ?", *fields.JobNumber)
	}
	if fields.Location != nil {
		add("location = ?", *fields.Location)
	}
	if fields.Client != nil {
		add("client = ?", *fields.Client)
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	set = append(set, "updated_at = ?")
	args = append(args, fmtTime(time.Now()), id)

	res, err := s.db.Conn().ExecContext(ctx,
		"UPDATE projects SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return project.Project{}, fmt.Errorf("update project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return project.Project{}, project.ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a project. It refuses while action items, daily logs,
// or calendar notes still reference it. Soft-deleted items count too;
// their rows are retained and still point at the project.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	var refs int64
	err := s.db.Conn().QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM action_items WHERE project_id = ?) +
			(SELECT COUNT(*) FROM daily_logs WHERE project_id = ?) +
			(SELECT COUNT(*) FROM calendar_notes WHERE project_id = ?)`,
		id, id, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("count project references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: %d reference(s)", project.ErrInUse, refs)
	}

	res, err := s.db.Conn().ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		if isForeignKeyError(err) {
			return project.ErrInUse
		}
		return fmt.Errorf("delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return project.ErrNotFound
	}
	return nil
}

func scanProject(row rowScanner) (project.Project, error) {
	var p project.Project
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Name, &p.Status, &p.JobNumber, &p.Location,
		&p.Client, &createdAt, &updatedAt)
	if err != nil {
		return project.Project{}, err
	}

	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}
