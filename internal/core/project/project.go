// Package project defines the job/site container domain model.
package project

import (
	"context"
	"errors"
	"time"
)

// Status represents the lifecycle state of a project.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// IsValid reports whether the status is a known value.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusArchived
}

// Project represents a named job or site that owns action items,
// daily logs, and calendar notes by reference.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	JobNumber string    `json:"job_number,omitempty"`
	Location  string    `json:"location,omitempty"`
	Client    string    `json:"client,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	// ErrNotFound is returned when a project does not exist.
	ErrNotFound = errors.New("project not found")
	// ErrInUse is returned when deleting a project that still owns
	// items or logs.
	ErrInUse = errors.New("project still has items or logs")
)

// ListFilter controls which projects are returned by List.
type ListFilter struct {
	Status Status // empty means all statuses
}

// Fields is a partial update applied to a project.
type Fields struct {
	Name      *string
	Status    *Status
	JobNumber *string
	Location  *string
	Client    *string
}

// Store defines the interface for project persistence.
type Store interface {
	// Create persists a new project. The store populates ID, Status,
	// CreatedAt, and UpdatedAt if not already set.
	Create(ctx context.Context, p *Project) error

	// Get returns a single project by ID.
	Get(ctx context.Context, id string) (Project, error)

	// List returns projects matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]Project, error)

	// Update applies a partial field update and returns the result.
	Update(ctx context.Context, id string, fields Fields) (Project, error)

	// Delete removes a project. Returns ErrInUse while any action
	// items or daily logs still reference it.
	Delete(ctx context.Context, id string) error
}
