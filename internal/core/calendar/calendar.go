// Package calendar defines the scheduled note domain model. Notes are
// freestanding reminders independent of the action item lifecycle,
// with a plain completion flag instead of a multi-state machine.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Note represents a scheduled note or reminder, optionally linked to a
// project and/or an action item for cross-navigation.
type Note struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id,omitempty"`
	ActionItemID string    `json:"action_item_id,omitempty"`
	NoteDate     string    `json:"note_date"` // YYYY-MM-DD
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	NoteType     string    `json:"note_type,omitempty"`
	Priority     string    `json:"priority,omitempty"`
	IsCompleted  bool      `json:"is_completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ErrNotFound is returned when a calendar note does not exist.
var ErrNotFound = errors.New("calendar note not found")

// ListFilter controls which notes are returned by List. A non-zero
// Month/Year pair restricts results to that calendar month.
type ListFilter struct {
	ProjectID string
	Month     time.Month // zero means no month window
	Year      int
}

// MonthWindow returns the half-open [start, end) date-string range for
// the filter's month, or empty strings when no month is set.
func (f ListFilter) MonthWindow() (start, end string) {
	if f.Month == 0 {
		return "", ""
	}
	first := time.Date(f.Year, f.Month, 1, 0, 0, 0, 0, time.UTC)
	return first.Format("2006-01-02"), first.AddDate(0, 1, 0).Format("2006-01-02")
}

// String implements fmt.Stringer for log output.
func (f ListFilter) String() string {
	if f.Month == 0 {
		return "all"
	}
	return fmt.Sprintf("%04d-%02d", f.Year, f.Month)
}

// Fields is a partial update applied to a note.
type Fields struct {
	NoteDate     *string
	Title        *string
	Description  *string
	NoteType     *string
	Priority     *string
	IsCompleted  *bool
	ProjectID    *string
	ActionItemID *string
}

// Store defines the interface for calendar note persistence.
type Store interface {
	// Create persists a new note.
	Create(ctx context.Context, n *Note) error

	// Get returns a single note by ID.
	Get(ctx context.Context, id string) (Note, error)

	// List returns notes matching the filter, ordered by note date.
	List(ctx context.Context, filter ListFilter) ([]Note, error)

	// Update applies a partial field update and returns the result.
	Update(ctx context.Context, id string, fields Fields) (Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, id string) error
}
