package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldworks/sitecmd/internal/core/diary"
	"github.com/fieldworks/sitecmd/internal/data/db"
)

const diaryColumns = `l.id, l.project_id, l.log_date, l.weather, l.conditions,
	l.notes, l.safety_incidents, l.priority, l.created_at, l.updated_at, p.name`

// DiaryStore implements diary.Store using SQLite. Reads join the
// projects table so logs carry their site name.
type DiaryStore struct {
	db *db.DB
}

var _ diary.Store = (*DiaryStore)(nil)

// NewDiaryStore creates a new SQLite-backed daily log store.
func NewDiaryStore(db *db.DB) *DiaryStore {
	return &DiaryStore{db: db}
}

// Create persists a new log. The (project_id, log_date) pair is
// unique; a second log for the same day returns ErrDuplicate.
func (s *DiaryStore) Create(ctx context.Context, l *diary.Log) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now

	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO daily_logs (id, project_id, log_date, weather, conditions,
			notes, safety_incidents, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.ProjectID, l.LogDate, l.Weather, l.Conditions,
		l.Notes, l.SafetyIncidents, l.Priority,
		fmtTime(l.CreatedAt), fmtTime(l.UpdatedAt))
	if err != nil {
		if isUniqueConstraintError(err) {
			return diary.ErrDuplicate
		}
		return fmt.Errorf("insert daily log: %w", err)
	}
	return nil
}

// Get returns a single log by ID with the site name joined in.
func (s *DiaryStore) Get(ctx context.Context, id string) (diary.Log, error) {
	row := s.db.Conn().QueryRowContext(ctx, `
		SELECT `+diaryColumns+`
		FROM daily_logs l
		JOIN projects p ON p.id = l.project_id
		WHERE l.id = ?`, id)

	l, err := scanDiaryLog(row)
	if err != nil {
		if IsNotFoundError(err) {
			return diary.Log{}, diary.ErrNotFound
		}
		return diary.Log{}, fmt.Errorf("get daily log: %w", err)
	}
	return l, nil
}

// List returns logs matching the filter, newest log date first.
func (s *DiaryStore) List(ctx context.Context, filter diary.ListFilter) ([]diary.Log, error) {
	query := `
		SELECT ` + diaryColumns + `
		FROM daily_logs l
		JOIN projects p ON p.id = l.project_id
		WHERE 1 = 1`
	var args []any

	if filter.Date != "" {
		query += " AND l.log_date = ?"
		args = append(args, filter.Date)
	}
	if filter.ProjectID != "" {
		query += " AND l.project_id = ?"
		args = append(args, filter.ProjectID)
	}
	query += " ORDER BY l.log_date DESC, p.name"

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []diary.Log
	for rows.Next() {
		l, err := scanDiaryLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Update applies a partial field update and returns the result.
func (s *DiaryStore) Update(ctx context.Context, id string, fields diary.Fields) (diary.Log, error) {
	var set []string
	var args []any
	add := func(clause string, v any) {
		set = append(set, clause)
		args = append(args, v)
	}

	if fields.Weather != nil {
		add("weather = ?", *fields.Weather)
	}
	if fields.Conditions != nil {
		add("conditions = ?", *fields.Conditions)
	}
	if fields.Notes != nil {
		add("notes = ?", *fields.Notes)
	}
	if fields.SafetyIncidents != nil {
		add("safety_incidents = ?", *fields.SafetyIncidents)
	}
	if fields.Priority != nil {
		add("priority = ?", *fields.Priority)
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	set = append(set, "updated_at = ?")
	args = append(args, fmtTime(time.Now()), id)

	res, err := s.db.Conn().ExecContext(ctx,
		"UPDATE daily_logs SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return diary.Log{}, fmt.Errorf("update daily log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return diary.Log{}, diary.ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a log.
func (s *DiaryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Conn().ExecContext(ctx, "DELETE FROM daily_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete daily log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return diary.ErrNotFound
	}
	return nil
}

func scanDiaryLog(row rowScanner) (diary.Log, error) {
	var l diary.Log
	var createdAt, updatedAt string

	err := row.Scan(&l.ID, &l.ProjectID, &l.LogDate, &l.Weather, &l.Conditions,
		&l.Notes, &l.SafetyIncidents, &l.Priority, &createdAt, &updatedAt, &l.SiteName)
	if err != nil {
		return diary.Log{}, err
	}

	l.CreatedAt = parseTime(createdAt)
	l.UpdatedAt = parseTime(updatedAt)
	return l, nil
}
