package sitecmd

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/fieldworks/sitecmd/internal/core/audit"
	"github.com/fieldworks/sitecmd/internal/core/capability"
	"github.com/fieldworks/sitecmd/internal/core/eventbus"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/validate"
)

// ItemService wraps item.Store with domain logic for validation,
// status transitions, defer handling, carry-forward, and event
// publishing.
type ItemService struct {
	store  item.Store
	audits audit.Store
	bus    *eventbus.EventBus
	caps   *capability.Set
	log    zerolog.Logger

	quickPickDays []int
}

// NewItemService creates a new ItemService.
func NewItemService(store item.Store, audits audit.Store, bus *eventbus.EventBus, caps *capability.Set, quickPickDays []int, log zerolog.Logger) *ItemService {
	return &ItemService{
		store:         store,
		audits:        audits,
		bus:           bus,
		caps:          caps,
		log:           log.With().Str("component", "item-service").Logger(),
		quickPickDays: quickPickDays,
	}
}

// Create validates and persists a new action item.
func (s *ItemService) Create(ctx context.Context, it *item.Item) error {
	if err := criterio.ValidateStruct(
		validate.TitleField("title", it.Title),
		validate.DateField("due_date", it.DueDate),
		validate.DateField("defer_until", it.DeferUntil),
	); err != nil {
		return err
	}

	// Free-form categories pass through; only the negotiable record
	// categories are gated on the deployment's capability set.
	if cat := capability.Category(it.Category); capability.Negotiable(cat) {
		if err := s.caps.Require(cat); err != nil {
			return err
		}
	}

	it.Priority = item.NormalizePriority(string(it.Priority))

	if err := s.store.Create(ctx, it); err != nil {
		return fmt.Errorf("create action item: %w", err)
	}

	s.bus.PublishItemCreated(eventbus.ItemCreatedPayload{Item: it})
	return nil
}

// Get returns a single item by ID.
func (s *ItemService) Get(ctx context.Context, id string) (item.Item, error) {
	return s.store.Get(ctx, id)
}

// List returns items matching the filter.
func (s *ItemService) List(ctx context.Context, filter item.ListFilter) ([]item.Item, error) {
	return s.store.List(ctx, filter)
}

// Update validates and applies a partial field update.
func (s *ItemService) Update(ctx context.Context, id string, fields item.Fields) (item.Item, error) {
	var checks []error
	if fields.Title != nil {
		checks = append(checks, validate.TitleField("title", *fields.Title))
	}
	if fields.DueDate != nil {
		checks = append(checks, validate.DateField("due_date", *fields.DueDate))
	}
	if fields.DeferUntil != nil {
		checks = append(checks, validate.DateField("defer_until", *fields.DeferUntil))
	}
	if fields.Priority != nil {
		checks = append(checks, validate.PriorityField("priority", string(*fields.Priority)))
	}
	if err := criterio.ValidateStruct(checks...); err != nil {
		return item.Item{}, err
	}
	if fields.Status != nil && !fields.Status.IsValid() {
		return item.Item{}, fmt.Errorf("%w: %q", item.ErrInvalidStatus, *fields.Status)
	}

	return s.store.Update(ctx, id, fields)
}

// Transition moves an item to a new status as one atomic write,
// stamping completed_at or cancelled_at when the target calls for it.
func (s *ItemService) Transition(ctx context.Context, id string, target item.Status) (item.Item, error) {
	if !target.IsValid() {
		return item.Item{}, fmt.Errorf("%w: %q", item.ErrInvalidStatus, target)
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return item.Item{}, err
	}
	if !item.CanTransition(current.Status, target) {
		return item.Item{}, fmt.Errorf("%w: %q -> %q", item.ErrInvalidStatus, current.Status, target)
	}

	now := time.Now()
	next := item.ApplyTransition(current, target, now)

	fields := item.Fields{Status: &target}
	if next.CompletedAt != nil && current.CompletedAt != next.CompletedAt {
		fields.CompletedAt = next.CompletedAt
	}
	if next.CancelledAt != nil && current.CancelledAt != next.CancelledAt {
		fields.CancelledAt = next.CancelledAt
	}

	updated, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return item.Item{}, fmt.Errorf("transition action item: %w", err)
	}

	s.log.Debug().
		Str("item_id", id).
		Str("from", string(current.Status)).
		Str("to", string(target)).
		Msg("item transitioned")

	s.bus.PublishItemTransitioned(eventbus.ItemTransitionedPayload{
		Item:      &updated,
		OldStatus: current.Status,
		NewStatus: target,
	})
	return updated, nil
}

// Defer hides an item from active views until the given date. A past
// or present date is accepted and simply has no hiding effect.
func (s *ItemService) Defer(ctx context.Context, id, until string) (item.Item, error) {
	if err := validate.RequiredDateField("defer_until", until); err != nil {
		return item.Item{}, err
	}

	updated, err := s.store.Update(ctx, id, item.Fields{DeferUntil: &until})
	if err != nil {
		return item.Item{}, fmt.Errorf("defer action item: %w", err)
	}

	s.bus.PublishItemDeferred(eventbus.ItemDeferredPayload{
		Item:       &updated,
		DeferUntil: until,
	})
	return updated, nil
}

// ClearDefer removes an item's defer date, returning it to active views.
func (s *ItemService) ClearDefer(ctx context.Context, id string) (item.Item, error) {
	empty := ""
	updated, err := s.store.Update(ctx, id, item.Fields{DeferUntil: &empty})
	if err != nil {
		return item.Item{}, fmt.Errorf("clear defer: %w", err)
	}

	// DeferUntil stays empty on the payload to mark the clear.
	s.bus.PublishItemDeferred(eventbus.ItemDeferredPayload{Item: &updated})
	return updated, nil
}

// QuickPicks returns the defer shortcut dates for today: the
// configured +N day offsets, in order.
func (s *ItemService) QuickPicks(today string) []string {
	picks := make([]string, 0, len(s.quickPickDays))
	for _, n := range s.quickPickDays {
		d, err := item.AddDays(today, n)
		if err != nil {
			continue
		}
		picks = append(picks, d)
	}
	return picks
}

// Delete soft-deletes an item.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	return s.store.SoftDelete(ctx, id)
}

// CarryForward moves every unresolved item due before targetDate to
// targetDate, optionally scoped to one project, and reports how many
// rows moved.
func (s *ItemService) CarryForward(ctx context.Context, targetDate, projectID string) (int64, error) {
	if err := validate.RequiredDateField("target_date", targetDate); err != nil {
		return 0, err
	}

	affected, err := s.store.CarryForward(ctx, targetDate, projectID)
	if err != nil {
		return 0, fmt.Errorf("carry forward: %w", err)
	}

	s.log.Info().
		Int64("affected", affected).
		Str("target_date", targetDate).
		Str("project_id", projectID).
		Msg("carry forward complete")

	s.bus.PublishItemCarriedForward(eventbus.ItemCarriedForwardPayload{
		ProjectID:  projectID,
		TargetDate: targetDate,
		Affected:   affected,
	})
	return affected, nil
}

// History returns the newest audit rows for an item, most recent first.
func (s *ItemService) History(ctx context.Context, id string, limit int) ([]audit.Row, error) {
	return s.audits.List(ctx, id, limit)
}
