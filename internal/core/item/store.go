package item

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an action item does not exist or has
	// been soft-deleted.
	ErrNotFound = errors.New("action item not found")
	// ErrInvalidStatus is returned for status strings outside the
	// known lifecycle values.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidDate is returned for date strings that are not
	// YYYY-MM-DD calendar dates.
	ErrInvalidDate = errors.New("invalid date: want YYYY-MM-DD")
)

// ListFilter controls which items are returned by List.
type ListFilter struct {
	ProjectID string // empty means all projects
	Status    Status // empty means all statuses
	Category  string // empty means all categories
}

// Fields is a partial update applied to an item in a single atomic
// write. Nil pointers leave the column untouched; for the two calendar
// date fields a pointer to the empty string clears the column.
type Fields struct {
	Title       *string
	Details     *string
	Category    *string
	Priority    *Priority
	Status      *Status
	DueDate     *string
	DeferUntil  *string
	Pinned      *bool
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// Empty reports whether the update would touch no columns.
func (f Fields) Empty() bool {
	return f.Title == nil && f.Details == nil && f.Category == nil &&
		f.Priority == nil && f.Status == nil && f.DueDate == nil &&
		f.DeferUntil == nil && f.Pinned == nil &&
		f.CompletedAt == nil && f.CancelledAt == nil
}

// Store defines the interface for action item persistence.
type Store interface {
	// Create persists a new item. The store populates ID, Status,
	// Priority, CreatedAt, and UpdatedAt if not already set.
	Create(ctx context.Context, it *Item) error

	// Get returns a single item by ID.
	// Returns ErrNotFound if the item does not exist or is deleted.
	Get(ctx context.Context, id string) (Item, error)

	// List returns items matching the filter, ordered by created_at DESC.
	// Soft-deleted items are always excluded.
	List(ctx context.Context, filter ListFilter) ([]Item, error)

	// Update applies a partial field update and returns the updated item.
	// The write is a single UPDATE; on rejection nothing is applied.
	Update(ctx context.Context, id string, fields Fields) (Item, error)

	// SoftDelete stamps deleted_at, removing the item from every query.
	SoftDelete(ctx context.Context, id string) error

	// CarryForward moves the due date of every overdue unresolved item
	// to targetDate and returns the number of affected rows. A
	// non-empty projectID scopes the operation to one project.
	CarryForward(ctx context.Context, targetDate, projectID string) (int64, error)

	// CountOpen returns the number of unresolved, non-deleted items.
	CountOpen(ctx context.Context) (int64, error)

	// CountOverdue returns unresolved items with a due date before today.
	CountOverdue(ctx context.Context, today string) (int64, error)

	// CountDeferred returns unresolved items deferred past today.
	CountDeferred(ctx context.Context, today string) (int64, error)

	// CountCompletedSince returns items completed at or after the cutoff.
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
}
