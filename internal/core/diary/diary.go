// Package diary defines the daily log domain model: one record per
// project per calendar date capturing site conditions.
package diary

import (
	"context"
	"errors"
	"time"
)

// Log represents a single daily site log.
type Log struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	LogDate         string    `json:"log_date"` // YYYY-MM-DD
	Weather         string    `json:"weather,omitempty"`
	Conditions      string    `json:"conditions,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	SafetyIncidents int       `json:"safety_incidents"`
	Priority        string    `json:"priority,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// SiteName is the owning project's display name, populated on reads
	// that join the projects table.
	SiteName string `json:"site_name,omitempty"`
}

var (
	// ErrNotFound is returned when a daily log does not exist.
	ErrNotFound = errors.New("daily log not found")
	// ErrDuplicate is returned when a log already exists for the same
	// project and date.
	ErrDuplicate = errors.New("daily log already exists for this project and date")
)

// ListFilter controls which logs are returned by List.
type ListFilter struct {
	Date      string // empty means all dates
	ProjectID string // empty means all projects
}

// Fields is a partial update applied to a daily log.
type Fields struct {
	Weather         *string
	Conditions      *string
	Notes           *string
	SafetyIncidents *int
	Priority        *string
}

// Store defines the interface for daily log persistence.
type Store interface {
	// Create persists a new log. Returns ErrDuplicate if the project
	// already has a log for the date.
	Create(ctx context.Context, l *Log) error

	// Get returns a single log by ID with the site name joined in.
	Get(ctx context.Context, id string) (Log, error)

	// List returns logs matching the filter, newest log date first.
	List(ctx context.Context, filter ListFilter) ([]Log, error)

	// Update applies a partial field update and returns the result.
	Update(ctx context.Context, id string, fields Fields) (Log, error)

	// Delete removes a log.
	Delete(ctx context.Context, id string) error
}
