package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldworks/sitecmd/internal/core/audit"
	"github.com/fieldworks/sitecmd/internal/core/dashboard"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/data/db"
)

const itemColumns = `id, project_id, title, details, category, priority, status,
	due_date, defer_until, pinned, source, source_ref,
	completed_at, cancelled_at, created_at, updated_at, deleted_at`

// ItemStore implements item.Store using SQLite. Every mutating method
// appends an audit row in the same transaction, so history and data
// can never disagree.
type ItemStore struct {
	db *db.DB
}

var (
	_ item.Store     = (*ItemStore)(nil)
	_ dashboard.Feed = (*ItemStore)(nil)
)

// NewItemStore creates a new SQLite-backed action item store.
func NewItemStore(db *db.DB) *ItemStore {
	return &ItemStore{db: db}
}

// Create persists a new item, filling in ID, status, priority, and
// timestamps when unset.
func (s *ItemStore) Create(ctx context.Context, it *item.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.Status == "" {
		it.Status = item.StatusOpen
	}
	if !it.Status.IsValid() {
		return fmt.Errorf("%w: %q", item.ErrInvalidStatus, it.Status)
	}
	it.Priority = item.NormalizePriority(string(it.Priority))

	now := time.Now()
	if it.CreatedAt.IsZero() {
		it.CreatedAt = now
	}
	it.UpdatedAt = now

	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO action_items (
				id, project_id, title, details, category, priority, status,
				due_date, defer_until, pinned, source, source_ref,
				completed_at, cancelled_at, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, nullEmpty(it.ProjectID), it.Title, it.Details, it.Category,
			string(it.Priority), string(it.Status),
			nullEmpty(it.DueDate), nullEmpty(it.DeferUntil),
			it.Pinned, it.Source, rawOrNil(it.SourceRef),
			fmtTimePtr(it.CompletedAt), fmtTimePtr(it.CancelledAt),
			fmtTime(it.CreatedAt), fmtTime(it.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert action item: %w", err)
		}

		return appendAudit(ctx, tx, audit.ActionInsert, it.ID, nil, it)
	})
}

// Get returns a single item by ID, excluding soft-deleted rows.
func (s *ItemStore) Get(ctx context.Context, id string) (item.Item, error) {
	row := s.db.Conn().QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM action_items
		WHERE id = ? AND deleted_at IS NULL`, id)

	it, err := scanItem(row)
	if err != nil {
		if IsNotFoundError(err) {
			return item.Item{}, item.ErrNotFound
		}
		return item.Item{}, fmt.Errorf("get action item: %w", err)
	}
	return it, nil
}

// List returns non-deleted items matching the filter, newest first.
func (s *ItemStore) List(ctx context.Context, filter item.ListFilter) ([]item.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM action_items WHERE deleted_at IS NULL`
	var args []any

	if filter.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filter.ProjectID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list action items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []item.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update applies a partial field update as a single UPDATE statement
// and returns the resulting item.
func (s *ItemStore) Update(ctx context.Context, id string, fields item.Fields) (item.Item, error) {
	var updated item.Item
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		old, err := getItemTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if fields.Empty() {
			updated = old
			return nil
		}

		set, args := buildItemSet(fields)
		set = append(set, "updated_at = ?")
		args = append(args, fmtTime(time.Now()), id)

		_, err = tx.ExecContext(ctx,
			"UPDATE action_items SET "+strings.Join(set, ", ")+" WHERE id = ? AND deleted_at IS NULL",
			args...)
		if err != nil {
			return fmt.Errorf("update action item: %w", err)
		}

		updated, err = getItemTx(ctx, tx, id)
		if err != nil {
			return err
		}
		return appendAudit(ctx, tx, audit.ActionUpdate, id, &old, &updated)
	})
	if err != nil {
		return item.Item{}, err
	}
	return updated, nil
}

// SoftDelete stamps deleted_at, hiding the item from every query.
func (s *ItemStore) SoftDelete(ctx context.Context, id string) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		old, err := getItemTx(ctx, tx, id)
		if err != nil {
			return err
		}

		now := fmtTime(time.Now())
		_, err = tx.ExecContext(ctx,
			"UPDATE action_items SET deleted_at = ?, updated_at = ? WHERE id = ?",
			now, now, id)
		if err != nil {
			return fmt.Errorf("delete action item: %w", err)
		}
		return appendAudit(ctx, tx, audit.ActionDelete, id, &old, nil)
	})
}

// CarryForward moves every unresolved item due before targetDate to
// targetDate. Each moved item gets its own audit row.
func (s *ItemStore) CarryForward(ctx context.Context, targetDate, projectID string) (int64, error) {
	var affected int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			SELECT ` + itemColumns + `
			FROM action_items
			WHERE deleted_at IS NULL
			  AND status NOT IN ('done', 'cancelled')
			  AND due_date IS NOT NULL AND due_date < ?`
		args := []any{targetDate}
		if projectID != "" {
			query += " AND project_id = ?"
			args = append(args, projectID)
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("select overdue items: %w", err)
		}
		var overdue []item.Item
		for rows.Next() {
			it, err := scanItem(rows)
			if err != nil {
				_ = rows.Close()
				return fmt.Errorf("scan overdue item: %w", err)
			}
			overdue = append(overdue, it)
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return err
		}
		_ = rows.Close()

		now := time.Now()
		for _, old := range overdue {
			updated := old
			updated.DueDate = targetDate
			updated.UpdatedAt = now

			_, err := tx.ExecContext(ctx,
				"UPDATE action_items SET due_date = ?, updated_at = ? WHERE id = ?",
				targetDate, fmtTime(now), old.ID)
			if err != nil {
				return fmt.Errorf("carry forward item %s: %w", old.ID, err)
			}
			if err := appendAudit(ctx, tx, audit.ActionUpdate, old.ID, &old, &updated); err != nil {
				return err
			}
		}
		affected = int64(len(overdue))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// CountOpen returns the number of unresolved, non-deleted items.
func (s *ItemStore) CountOpen(ctx context.Context) (int64, error) {
	return s.count(ctx, `
		SELECT COUNT(*) FROM action_items
		WHERE deleted_at IS NULL AND status NOT IN ('done', 'cancelled')`)
}

// CountOverdue returns unresolved items with a due date before today.
func (s *ItemStore) CountOverdue(ctx context.Context, today string) (int64, error) {
	return s.count(ctx, `
		SELECT COUNT(*) FROM action_items
		WHERE deleted_at IS NULL AND status NOT IN ('done', 'cancelled')
		  AND due_date IS NOT NULL AND due_date < ?`, today)
}

// CountDeferred returns unresolved items deferred past today.
func (s *ItemStore) CountDeferred(ctx context.Context, today string) (int64, error) {
	return s.count(ctx, `
		SELECT COUNT(*) FROM action_items
		WHERE deleted_at IS NULL AND status NOT IN ('done', 'cancelled')
		  AND defer_until IS NOT NULL AND defer_until > ?`, today)
}

// CountCompletedSince returns items completed at or after the cutoff.
func (s *ItemStore) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	return s.count(ctx, `
		SELECT COUNT(*) FROM action_items
		WHERE deleted_at IS NULL AND status = 'done'
		  AND completed_at IS NOT NULL AND completed_at >= ?`, fmtTime(since))
}

// ListOpenRows returns every unresolved item joined with its project,
// as raw feed rows for the dashboard to normalize and bucket.
func (s *ItemStore) ListOpenRows(ctx context.Context) ([]dashboard.Row, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT i.id, i.title, i.details, i.category, i.priority, i.status,
		       i.due_date, i.defer_until, i.project_id,
		       p.name, p.job_number,
		       i.created_at, i.updated_at
		FROM action_items i
		LEFT JOIN projects p ON p.id = i.project_id
		WHERE i.deleted_at IS NULL
		  AND i.status NOT IN ('done', 'cancelled')
		ORDER BY i.created_at DESC, i.id`)
	if err != nil {
		return nil, fmt.Errorf("list open rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []dashboard.Row
	for rows.Next() {
		var r dashboard.Row
		var due, deferUntil, projectID, siteName, jobNumber sql.NullString
		var createdAt, updatedAt string

		err := rows.Scan(&r.ID, &r.Title, &r.Details, &r.Category, &r.Priority,
			&r.Status, &due, &deferUntil, &projectID, &siteName, &jobNumber,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan open row: %w", err)
		}

		r.DueDate = strOr(due)
		r.DeferUntil = strOr(deferUntil)
		r.ProjectID = strOr(projectID)
		r.SiteName = strOr(siteName)
		r.JobNumber = strOr(jobNumber)
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *ItemStore) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.Conn().QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count action items: %w", err)
	}
	return n, nil
}

func getItemTx(ctx context.Context, tx *sql.Tx, id string) (item.Item, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM action_items
		WHERE id = ? AND deleted_at IS NULL`, id)

	it, err := scanItem(row)
	if err != nil {
		if IsNotFoundError(err) {
			return item.Item{}, item.ErrNotFound
		}
		return item.Item{}, fmt.Errorf("get action item: %w", err)
	}
	return it, nil
}

// buildItemSet translates a partial update into SET clauses. A pointer
// to the empty string clears the nullable date columns.
func buildItemSet(fields item.Fields) (set []string, args []any) {
	add := func(clause string, v any) {
		set = append(set, clause)
		args = append(args, v)
	}

	if fields.Title != nil {
		add("title = ?", *fields.Title)
	}
	if fields.Details != nil {
		add("details = ?", *fields.Details)
	}
	if fields.Category != nil {
		add("category = ?", *fields.Category)
	}
	if fields.Priority != nil {
		add("priority = ?", string(*fields.Priority))
	}
	if fields.Status != nil {
		add("status = ?", string(*fields.Status))
	}
	if fields.DueDate != nil {
		add("due_date = ?", nullEmpty(*fields.DueDate))
	}
	if fields.DeferUntil != nil {
		add("defer_until = ?", nullEmpty(*fields.DeferUntil))
	}
	if fields.Pinned != nil {
		add("pinned = ?", *fields.Pinned)
	}
	if fields.CompletedAt != nil {
		add("completed_at = ?", fmtTime(*fields.CompletedAt))
	}
	if fields.CancelledAt != nil {
		add("cancelled_at = ?", fmtTime(*fields.CancelledAt))
	}
	return set, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (item.Item, error) {
	var it item.Item
	var projectID, due, deferUntil, sourceRef sql.NullString
	var completedAt, cancelledAt, deletedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&it.ID, &projectID, &it.Title, &it.Details, &it.Category,
		&it.Priority, &it.Status, &due, &deferUntil, &it.Pinned,
		&it.Source, &sourceRef, &completedAt, &cancelledAt,
		&createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return item.Item{}, err
	}

	it.ProjectID = strOr(projectID)
	it.DueDate = strOr(due)
	it.DeferUntil = strOr(deferUntil)
	if sourceRef.Valid && sourceRef.String != "" {
		it.SourceRef = json.RawMessage(sourceRef.String)
	}
	it.CompletedAt = parseTimePtr(completedAt)
	it.CancelledAt = parseTimePtr(cancelledAt)
	it.CreatedAt = parseTime(createdAt)
	it.UpdatedAt = parseTime(updatedAt)
	it.DeletedAt = parseTimePtr(deletedAt)
	return it, nil
}

func rawOrNil(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

// appendAudit records a change with before/after snapshots. Audit rows
// are written only here, inside the same transaction as the change.
func appendAudit(ctx context.Context, tx *sql.Tx, action audit.Action, itemID string, oldRow, newRow *item.Item) error {
	marshal := func(it *item.Item) (any, error) {
		if it == nil {
			return nil, nil
		}
		b, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}

	oldJSON, err := marshal(oldRow)
	if err != nil {
		return fmt.Errorf("marshal audit old row: %w", err)
	}
	newJSON, err := marshal(newRow)
	if err != nil {
		return fmt.Errorf("marshal audit new row: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO action_item_audit (action, action_item_id, changed_by, changed_at, old_row, new_row)
		VALUES (?, ?, '', ?, ?, ?)`,
		string(action), itemID, fmtTime(time.Now()), oldJSON, newJSON)
	if err != nil {
		return fmt.Errorf("append audit row: %w", err)
	}
	return nil
}
