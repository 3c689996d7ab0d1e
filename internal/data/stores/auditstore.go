package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fieldworks/sitecmd/internal/core/audit"
	"github.com/fieldworks/sitecmd/internal/data/db"
)

// AuditStore implements audit.Store using SQLite. It is read-only:
// rows are inserted by ItemStore inside item write transactions.
type AuditStore struct {
	db *db.DB
}

var _ audit.Store = (*AuditStore)(nil)

// NewAuditStore creates a new SQLite-backed audit history reader.
func NewAuditStore(db *db.DB) *AuditStore {
	return &AuditStore{db: db}
}

// List returns the newest audit rows for an item, most recent first.
func (s *AuditStore) List(ctx context.Context, itemID string, limit int) ([]audit.Row, error) {
	if limit <= 0 {
		limit = audit.DefaultLimit
	}

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT id, action, action_item_id, changed_by, changed_at, old_row, new_row
		FROM action_item_audit
		WHERE action_item_id = ?
		ORDER BY changed_at DESC, id DESC
		LIMIT ?`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectAuditRows(rows)
}

// ListForProject returns the newest audit rows across all items of a
// project, most recent first. Rows survive item soft-deletion, so the
// join includes deleted items.
func (s *AuditStore) ListForProject(ctx context.Context, projectID string, limit int) ([]audit.Row, error) {
	if limit <= 0 {
		limit = audit.DefaultLimit
	}

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT a.id, a.action, a.action_item_id, a.changed_by, a.changed_at, a.old_row, a.new_row
		FROM action_item_audit a
		JOIN action_items i ON i.id = a.action_item_id
		WHERE i.project_id = ?
		ORDER BY a.changed_at DESC, a.id DESC
		LIMIT ?`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("list project audit rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectAuditRows(rows)
}

func collectAuditRows(rows *sql.Rows) ([]audit.Row, error) {
	var result []audit.Row
	for rows.Next() {
		var r audit.Row
		var changedAt string
		var oldRow, newRow sql.NullString

		err := rows.Scan(&r.ID, &r.Action, &r.ActionItemID, &r.ChangedBy,
			&changedAt, &oldRow, &newRow)
		if err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}

		r.ChangedAt = parseTime(changedAt)
		if oldRow.Valid && oldRow.String != "" {
			r.OldRow = json.RawMessage(oldRow.String)
		}
		if newRow.Valid && newRow.String != "" {
			r.NewRow = json.RawMessage(newRow.String)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
