package stores

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldworks/sitecmd/internal/core/calendar"
	"github.com/fieldworks/sitecmd/internal/data/db"
)

const calendarColumns = `id, project_id, action_item_id, note_date, title,
	description, note_type, priority, is_completed, created_at, updated_at`

// CalendarStore implements calendar.Store using SQLite.
type CalendarStore struct {
	db *db.DB
}

var _ calendar.Store = (*CalendarStore)(nil)

// NewCalendarStore creates a new SQLite-backed calendar note store.
func NewCalendarStore(db *db.DB) *CalendarStore {
	return &CalendarStore{db: db}
}

// Create persists a new note, filling in ID and timestamps when unset.
func (s *CalendarStore) Create(ctx context.Context, n *calendar.Note) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now

	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO calendar_notes (id, project_id, action_item_id, note_date,
			title, description, note_type, priority, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, nullEmpty(n.ProjectID), nullEmpty(n.ActionItemID), n.NoteDate,
		n.Title, n.Description, n.NoteType, n.Priority, n.IsCompleted,
		fmtTime(n.CreatedAt), fmtTime(n.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert calendar note: %w", err)
	}
	return nil
}

// Get returns a single note by ID.
func (s *CalendarStore) Get(ctx context.Context, id string) (calendar.Note, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		"SELECT "+calendarColumns+" FROM calendar_notes WHERE id = ?", id)

	n, err := scanCalendarNote(row)
	if err != nil {
		if IsNotFoundError(err) {
			return calendar.Note{}, calendar.ErrNotFound
		}
		return calendar.Note{}, fmt.Errorf("get calendar note: %w", err)
	}
	return n, nil
}

// List returns notes matching the filter ordered by note date. A month
// filter becomes a half-open date range on the YYYY-MM-DD column.
func (s *CalendarStore) List(ctx context.Context, filter calendar.ListFilter) ([]calendar.Note, error) {
	query := "SELECT " + calendarColumns + " FROM calendar_notes WHERE 1 = 1"
	var args []any

	if filter.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filter.ProjectID)
	}
	if start, end := filter.MonthWindow(); start != "" {
		query += " AND note_date >= ? AND note_date < ?"
		args = append(args, start, end)
	}
	query += " ORDER BY note_date, created_at"

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calendar notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notes []calendar.Note
	for rows.Next() {
		n, err := scanCalendarNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Update applies a partial field update and returns the result.
func (s *CalendarStore) Update(ctx context.Context, id string, fields calendar.Fields) (calendar.Note, error) {
	var set []string
	var args []any
	add := func(clause string, v any) {
		set = append(set, clause)
		args = append(args, v)
	}

	if fields.NoteDate != nil {
		add("note_date = ?", *fields.NoteDate)
	}
	if fields.Title != nil {
		add("title = ?", *fields.Title)
	}
	if fields.Description != nil {
		add("description = ?", *fields.Description)
	}
	if fields.NoteType != nil {
		add("note_type = ?", *fields.NoteType)
	}
	if fields.Priority != nil {
		add("priority = ?", *fields.Priority)
	}
	if fields.IsCompleted != nil {
		add("is_completed = ?", *fields.IsCompleted)
	}
	if fields.ProjectID != nil {
		add("project_id = ?", nullEmpty(*fields.ProjectID))
	}
	if fields.ActionItemID != nil {
		add("action_item_id = ?", nullEmpty(*fields.ActionItemID))
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	set = append(set, "updated_at = ?")
	args = append(args, fmtTime(time.Now()), id)

	res, err := s.db.Conn().ExecContext(ctx,
		"UPDATE calendar_notes SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return calendar.Note{}, fmt.Errorf("update calendar note: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return calendar.Note{}, calendar.ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a note.
func (s *CalendarStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Conn().ExecContext(ctx, "DELETE FROM calendar_notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete calendar note: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return calendar.ErrNotFound
	}
	return nil
}

func scanCalendarNote(row rowScanner) (calendar.Note, error) {
	var n calendar.Note
	var projectID, actionItemID sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&n.ID, &projectID, &actionItemID, &n.NoteDate, &n.Title,
		&n.Description, &n.NoteType, &n.Priority, &n.IsCompleted,
		&createdAt, &updatedAt)
	if err != nil {
		return calendar.Note{}, err
	}

	n.ProjectID = strOr(projectID)
	n.ActionItemID = strOr(actionItemID)
	n.CreatedAt = parseTime(createdAt)
	n.UpdatedAt = parseTime(updatedAt)
	return n, nil
}
