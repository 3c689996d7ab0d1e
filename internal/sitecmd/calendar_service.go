package sitecmd

import (
	"context"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/fieldworks/sitecmd/internal/core/calendar"
	"github.com/fieldworks/sitecmd/internal/core/validate"
)

// CalendarService wraps calendar.Store with validation.
type CalendarService struct {
	store calendar.Store
	log   zerolog.Logger
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(store calendar.Store, log zerolog.Logger) *CalendarService {
	return &CalendarService{
		store: store,
		log:   log.With().Str("component", "calendar-service").Logger(),
	}
}

// Create validates and persists a new note.
func (s *CalendarService) Create(ctx context.Context, n *calendar.Note) error {
	if err := criterio.ValidateStruct(
		validate.TitleField("title", n.Title),
		validate.RequiredDateField("note_date", n.NoteDate),
		validate.PriorityField("priority", n.Priority),
	); err != nil {
		return err
	}

	if err := s.store.Create(ctx, n); err != nil {
		return fmt.Errorf("create calendar note: %w", err)
	}
	return nil
}

// Get returns a single note by ID.
func (s *CalendarService) Get(ctx context.Context, id string) (calendar.Note, error) {
	return s.store.Get(ctx, id)
}

// List returns notes matching the filter.
func (s *CalendarService) List(ctx context.Context, filter calendar.ListFilter) ([]calendar.Note, error) {
	return s.store.List(ctx, filter)
}

// Update validates and applies a partial field update.
func (s *CalendarService) Update(ctx context.Context, id string, fields calendar.Fields) (calendar.Note, error) {
	var checks []error
	if fields.Title != nil {
		checks = append(checks, validate.TitleField("title", *fields.Title))
	}
	if fields.NoteDate != nil {
		checks = append(checks, validate.RequiredDateField("note_date", *fields.NoteDate))
	}
	if err := criterio.ValidateStruct(checks...); err != nil {
		return calendar.Note{}, err
	}
	return s.store.Update(ctx, id, fields)
}

// Complete marks a note done. Notes carry a plain flag, not the item
// lifecycle.
func (s *CalendarService) Complete(ctx context.Context, id string) (calendar.Note, error) {
	done := true
	return s.store.Update(ctx, id, calendar.Fields{IsCompleted: &done})
}

// Delete removes a note.
func (s *CalendarService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
