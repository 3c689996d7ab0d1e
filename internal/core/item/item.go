// Package item defines the action item domain model for site task tracking.
package item

import (
	"encoding/json"
	"time"
)

// Status represents the lifecycle state of an action item.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusBlocked, StatusDone, StatusCancelled}

// IsValid reports whether the status is one of the five known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Resolved reports whether the status is a terminal one for dashboard
// purposes. Resolved items are excluded from the open-item feed.
func (s Status) Resolved() bool {
	return s == StatusDone || s == StatusCancelled
}

// Priority represents the urgency of an action item.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Priorities lists every valid priority from most to least urgent.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// IsValid reports whether the priority is one of the four known values.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort rank of the priority. Lower ranks sort first.
// Unknown or empty priorities rank with low.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// NormalizePriority maps arbitrary input to a valid priority,
// defaulting to medium for empty or unrecognized values.
func NormalizePriority(s string) Priority {
	p := Priority(s)
	if p.IsValid() {
		return p
	}
	return PriorityMedium
}

// Item represents a single trackable task or observation on a site.
// DueDate and DeferUntil are calendar dates in YYYY-MM-DD form with no
// time component; they are compared lexicographically, which matches
// chronological order for that fixed-width format.
type Item struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id,omitempty"`
	Title       string          `json:"title"`
	Details     string          `json:"details,omitempty"`
	Category    string          `json:"category,omitempty"`
	Priority    Priority        `json:"priority"`
	Status      Status          `json:"status"`
	DueDate     string          `json:"due_date,omitempty"`
	DeferUntil  string          `json:"defer_until,omitempty"`
	Pinned      bool            `json:"pinned,omitempty"`
	Source      string          `json:"source,omitempty"`
	SourceRef   json.RawMessage `json:"source_ref,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

// Deferred reports whether the item is hidden from active views on the
// given day. today is a YYYY-MM-DD date string.
func (it Item) Deferred(today string) bool {
	return it.DeferUntil != "" && it.DeferUntil > today
}
