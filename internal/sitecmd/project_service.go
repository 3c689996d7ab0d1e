package sitecmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fieldworks/sitecmd/internal/core/project"
	"github.com/fieldworks/sitecmd/internal/core/validate"
)

// ProjectService wraps project.Store with validation.
type ProjectService struct {
	store project.Store
	log   zerolog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store project.Store, log zerolog.Logger) *ProjectService {
	return &ProjectService{
		store: store,
		log:   log.With().Str("component", "project-service").Logger(),
	}
}

// Create validates and persists a new project.
func (s *ProjectService) Create(ctx context.Context, p *project.Project) error {
	if err := validate.ProjectNameField("name", p.Name); err != nil {
		return err
	}
	if err := s.store.Create(ctx, p); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Get returns a single project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (project.Project, error) {
	return s.store.Get(ctx, id)
}

// List returns projects matching the filter.
func (s *ProjectService) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	return s.store.List(ctx, filter)
}

// Update validates and applies a partial field update.
func (s *ProjectService) Update(ctx context.Context, id string, fields project.Fields) (project.Project, error) {
	if fields.Name != nil {
		if err := validate.ProjectNameField("name", *fields.Name); err != nil {
			return project.Project{}, err
		}
	}
	if fields.Status != nil && !fields.Status.IsValid() {
		return project.Project{}, fmt.Errorf("invalid project status: %q", *fields.Status)
	}
	return s.store.Update(ctx, id, fields)
}

// Archive marks a project archived without touching its items.
func (s *ProjectService) Archive(ctx context.Context, id string) (project.Project, error) {
	archived := project.StatusArchived
	return s.store.Update(ctx, id, project.Fields{Status: &archived})
}

// Delete removes a project. It fails with project.ErrInUse while any
// items or logs still reference it; archive instead to keep history.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
