package sitecmd

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitecmd/internal/core/capability"
	"github.com/fieldworks/sitecmd/internal/core/eventbus"
	"github.com/fieldworks/sitecmd/internal/core/eventbus/testbus"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/data/db"
	"github.com/fieldworks/sitecmd/internal/data/stores"
)

func newItemService(t *testing.T) (*ItemService, *testbus.Bus) {
	return newItemServiceWithCaps(t, capability.DefaultSet())
}

func newItemServiceWithCaps(t *testing.T, caps *capability.Set) (*ItemService, *testbus.Bus) {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	bus := testbus.New(t)
	svc := NewItemService(
		stores.NewItemStore(database),
		stores.NewAuditStore(database),
		bus.EventBus,
		caps,
		[]int{1, 3, 7, 14},
		zerolog.Nop(),
	)
	return svc, bus
}

func TestItemService_Create(t *testing.T) {
	svc, bus := newItemService(t)
	ctx := context.Background()

	it := item.Item{Title: "Order lumber"}
	require.NoError(t, svc.Create(ctx, &it))
	assert.Equal(t, item.PriorityMedium, it.Priority, "unset priority defaults to medium")

	require.True(t, bus.WaitFor(eventbus.EventItemCreated, time.Second))
	bus.AssertPublished(t, eventbus.EventItemCreated)
}

func TestItemService_Create_Invalid(t *testing.T) {
	svc, bus := newItemService(t)
	ctx := context.Background()

	err := svc.Create(ctx, &item.Item{Title: "   "})
	require.Error(t, err, "blank title rejected")
	assert.Contains(t, err.Error(), "title", "validation errors name the field")

	err = svc.Create(ctx, &item.Item{Title: "ok", DueDate: "June 1st"})
	require.Error(t, err, "malformed due date rejected")
	assert.Contains(t, err.Error(), "due_date")

	bus.AssertNotPublished(t, eventbus.EventItemCreated, 50*time.Millisecond)
}

func TestItemService_Create_UnavailableCategory(t *testing.T) {
	svc, bus := newItemService(t)
	ctx := context.Background()

	err := svc.Create(ctx, &item.Item{Title: "Log deliveries", Category: "materials"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
	bus.AssertNotPublished(t, eventbus.EventItemCreated, 50*time.Millisecond)

	// Free-form labels are not gated.
	require.NoError(t, svc.Create(ctx, &item.Item{Title: "File permits", Category: "paperwork"}))
}

func TestItemService_Create_EnabledCategory(t *testing.T) {
	svc, _ := newItemServiceWithCaps(t, capability.NewSet(capability.Materials))
	ctx := context.Background()

	err := svc.Create(ctx, &item.Item{Title: "Log deliveries", Category: "materials"})
	require.NoError(t, err)

	err = svc.Create(ctx, &item.Item{Title: "Badge visitors", Category: "visitors"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "materials", "the error lists what is available")
}

func TestItemService_Transition_Done(t *testing.T) {
	svc, bus := newItemService(t)
	ctx := context.Background()

	it := item.Item{Title: "Pour footing"}
	require.NoError(t, svc.Create(ctx, &it))

	updated, err := svc.Transition(ctx, it.ID, item.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, item.StatusDone, updated.Status)
	require.NotNil(t, updated.CompletedAt, "completing stamps completed_at")

	require.True(t, bus.WaitFor(eventbus.EventItemTransitioned, time.Second))
	for _, ev := range bus.Events() {
		if ev.Event != eventbus.EventItemTransitioned {
			continue
		}
		p, ok := ev.Payload.(eventbus.ItemTransitionedPayload)
		require.True(t, ok)
		assert.Equal(t, item.StatusOpen, p.OldStatus)
		assert.Equal(t, item.StatusDone, p.NewStatus)
	}
}

func TestItemService_Transition_ReopenKeepsStamp(t *testing.T) {
	svc, _ := newItemService(t)
	ctx := context.Background()

	it := item.Item{Title: "Re-check anchors"}
	require.NoError(t, svc.Create(ctx, &it))

	done, err := svc.Transition(ctx, it.ID, item.StatusDone)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)

	reopened, err := svc.Transition(ctx, it.ID, item.StatusOpen)
	require.NoError(t, err)
	assert.Equal(t, item.StatusOpen, reopened.Status)
	assert.NotNil(t, reopened.CompletedAt, "reopening keeps the completion record")
}

func TestItemService_Transition_InvalidStatus(t *testing.T) {
	svc, _ := newItemService(t)
	ctx := context.Background()

	it := item.Item{Title: "x"}
	require.NoError(t, svc.Create(ctx, &it))

	_, err := svc.Transition(ctx, it.ID, "paused")
	require.ErrorIs(t, err, item.ErrInvalidStatus)
}

func TestItemService_Transition_NotFound(t *testing.T) {
	svc, _ := newItemService(t)

	_, err := svc.Transition(context.Background(), "missing", item.StatusDone)
	require.ErrorIs(t, err, item.ErrNotFound)
}

func TestItemService_DeferAndClear(t *testing.T) {
	svc, bus := newItemService(t)
	ctx := context.Background()

	it := item.Item{Title: "Snag list"}
	require.NoError(t, svc.Create(ctx, &it))

	deferred, err := svc.Defer(ctx, it.ID, "2030-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-15", deferred.DeferUntil)

	require.True(t, bus.WaitFor(eventbus.EventItemDeferred, time.Second))

	cleared, err := svc.ClearDefer(ctx, it.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.DeferUntil)

	require.Eventually(t, func() bool {
		return countDeferred(bus) == 2
	}, time.Second, 5*time.Millisecond, "clearing publishes its own defer event")

	var last eventbus.ItemDeferredPayload
	for _, ev := range bus.Events() {
		if ev.Event == eventbus.EventItemDeferred {
			last = ev.Payload.(eventbus.ItemDeferredPayload)
		}
	}
	assert.Empty(t, last.DeferUntil, "the clear event carries no date")
}

func countDeferred(bus *testbus.Bus) int {
	n := 0
	for _, ev := range bus.Events() {
		if ev.Event == eventbus.EventItemDeferred {
			n++
		}
	}
	return n
}

func TestItemService_Defer_RequiresDate(t *testing.T) {
	svc, _ := newItemService(t)
	ctx := context.Background()

	it := item.Item{Title: "x"}
	require.NoError(t, svc.Create(ctx, &it))

	_, err := svc.Defer(ctx, it.ID, "")
	require.Error(t, err)

	_, err = svc.Defer(ctx, it.ID, "not-a-date")
	require.Error(t, err)
}

func TestItemService_QuickPicks(t *testing.T) {
	svc, _ := newItemService(t)

	picks := svc.QuickPicks("2024-06-15")
	assert.Equal(t, []string{"2024-06-16", "2024-06-18", "2024-06-22", "2024-06-29"}, picks)
}

func TestItemService_CarryForward(t *testing.T) {
	svc, bus := newItemService(t)
	ctx := context.Background()

	late := item.Item{Title: "late", DueDate: "2024-06-01"}
	current := item.Item{Title: "current", DueDate: "2024-06-20"}
	require.NoError(t, svc.Create(ctx, &late))
	require.NoError(t, svc.Create(ctx, &current))

	moved, err := svc.CarryForward(ctx, "2024-06-15", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, moved)

	require.True(t, bus.WaitFor(eventbus.EventItemCarriedForward, time.Second))
	for _, ev := range bus.Events() {
		if ev.Event != eventbus.EventItemCarriedForward {
			continue
		}
		p, ok := ev.Payload.(eventbus.ItemCarriedForwardPayload)
		require.True(t, ok)
		assert.EqualValues(t, 1, p.Affected)
		assert.Equal(t, "2024-06-15", p.TargetDate)
		assert.Empty(t, p.ProjectID)
	}
}

func TestItemService_CarryForward_RequiresDate(t *testing.T) {
	svc, _ := newItemService(t)

	_, err := svc.CarryForward(context.Background(), "", "")
	require.Error(t, err)
}

func TestItemService_History(t *testing.T) {
	svc, _ := newItemService(t)
	ctx := context.Background()

	it := item.Item{Title: "tracked"}
	require.NoError(t, svc.Create(ctx, &it))
	_, err := svc.Transition(ctx, it.ID, item.StatusInProgress)
	require.NoError(t, err)

	rows, err := svc.History(ctx, it.ID, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2, "create and transition each leave a row")
}
