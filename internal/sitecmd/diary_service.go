package sitecmd

import (
	"context"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/fieldworks/sitecmd/internal/core/diary"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/validate"
)

// DiaryService wraps diary.Store with validation and date defaulting.
type DiaryService struct {
	store diary.Store
	log   zerolog.Logger
}

// NewDiaryService creates a new DiaryService.
func NewDiaryService(store diary.Store, log zerolog.Logger) *DiaryService {
	return &DiaryService{
		store: store,
		log:   log.With().Str("component", "diary-service").Logger(),
	}
}

// Create validates and persists a new daily log. An empty log date
// defaults to today.
func (s *DiaryService) Create(ctx context.Context, l *diary.Log) error {
	if l.ProjectID == "" {
		return fmt.Errorf("daily log requires a project")
	}
	if l.LogDate == "" {
		l.LogDate = item.Today()
	}
	if err := criterio.ValidateStruct(
		validate.RequiredDateField("log_date", l.LogDate),
		validate.PriorityField("priority", l.Priority),
	); err != nil {
		return err
	}

	if err := s.store.Create(ctx, l); err != nil {
		return fmt.Errorf("create daily log: %w", err)
	}
	return nil
}

// Get returns a single log by ID.
func (s *DiaryService) Get(ctx context.Context, id string) (diary.Log, error) {
	return s.store.Get(ctx, id)
}

// List returns logs matching the filter.
func (s *DiaryService) List(ctx context.Context, filter diary.ListFilter) ([]diary.Log, error) {
	if filter.Date != "" {
		if err := validate.RequiredDateField("date", filter.Date); err != nil {
			return nil, err
		}
	}
	return s.store.List(ctx, filter)
}

// Update validates and applies a partial field update.
func (s *DiaryService) Update(ctx context.Context, id string, fields diary.Fields) (diary.Log, error) {
	if fields.Priority != nil {
		if err := validate.PriorityField("priority", *fields.Priority); err != nil {
			return diary.Log{}, err
		}
	}
	return s.store.Update(ctx, id, fields)
}

// Delete removes a log.
func (s *DiaryService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
