// Package audit defines the read-only change history for action items.
// Rows are appended by the store layer as a side effect of item writes;
// nothing outside the store ever inserts or mutates them.
package audit

import (
	"context"
	"encoding/json"
	"time"
)

// Action classifies what kind of change produced an audit row.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Row is one recorded change to an action item, with full before and
// after snapshots.
type Row struct {
	ID           int64           `json:"id"`
	Action       Action          `json:"action"`
	ActionItemID string          `json:"action_item_id"`
	ChangedBy    string          `json:"changed_by,omitempty"`
	ChangedAt    time.Time       `json:"changed_at"`
	OldRow       json.RawMessage `json:"old_row,omitempty"`
	NewRow       json.RawMessage `json:"new_row,omitempty"`
}

// DefaultLimit bounds history reads when callers pass no limit.
const DefaultLimit = 25

// Store reads audit history. There is deliberately no write method.
type Store interface {
	// List returns the newest rows for an item, most recent first,
	// bounded by limit (DefaultLimit when limit <= 0).
	List(ctx context.Context, itemID string, limit int) ([]Row, error)

	// ListForProject returns the newest rows across all items of a
	// project, most recent first, bounded by limit.
	ListForProject(ctx context.Context, projectID string, limit int) ([]Row, error)
}
