// Package validate provides shared validation functions. Failures here
// are local validation errors raised before any store call is made.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/fieldworks/sitecmd/internal/core/item"
)

// Title validates an item or note title is non-empty after trimming whitespace.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// TitleField returns a criterio validator result for titles.
func TitleField(field, title string) error {
	return criterio.Run(field, title, Title)
}

// ProjectName validates a project name is non-empty after trimming whitespace.
func ProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// ProjectNameField returns a criterio validator result for project names.
func ProjectNameField(field, name string) error {
	return criterio.Run(field, name, ProjectName)
}

// Date validates a YYYY-MM-DD calendar date. Empty is accepted; use
// RequiredDate when a value must be present.
func Date(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("must be a YYYY-MM-DD date")
	}
	return nil
}

// RequiredDate validates a non-empty YYYY-MM-DD calendar date.
func RequiredDate(s string) error {
	if s == "" {
		return fmt.Errorf("date is required")
	}
	return Date(s)
}

// DateField returns a criterio validator result for optional dates.
func DateField(field, s string) error {
	return criterio.Run(field, s, Date)
}

// RequiredDateField returns a criterio validator result for mandatory dates.
func RequiredDateField(field, s string) error {
	return criterio.Run(field, s, RequiredDate)
}

// Priority validates a priority string. Empty is accepted and treated
// as medium downstream.
func Priority(s string) error {
	if s == "" {
		return nil
	}
	if !item.Priority(s).IsValid() {
		return fmt.Errorf("must be one of critical, high, medium, low")
	}
	return nil
}

// PriorityField returns a criterio validator result for priorities.
func PriorityField(field, s string) error {
	return criterio.Run(field, s, Priority)
}

// Status validates a lifecycle status string.
func Status(s string) error {
	if !item.Status(s).IsValid() {
		return fmt.Errorf("must be one of open, in_progress, blocked, done, cancelled")
	}
	return nil
}

// StatusField returns a criterio validator result for statuses.
func StatusField(field, s string) error {
	return criterio.Run(field, s, Status)
}
