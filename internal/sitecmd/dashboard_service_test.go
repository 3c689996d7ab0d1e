package sitecmd

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitecmd/internal/core/dashboard"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/data/db"
	"github.com/fieldworks/sitecmd/internal/data/stores"
)

func newDashboardService(t *testing.T) (*DashboardService, *stores.ItemStore) {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	store := stores.NewItemStore(database)
	return NewDashboardService(store, store, dashboard.DefaultBucketCap, zerolog.Nop()), store
}

func TestDashboardService_CommandCenterFor(t *testing.T) {
	svc, store := newDashboardService(t)
	ctx := context.Background()
	today := "2024-06-15"

	seed := []item.Item{
		{Title: "overdue", DueDate: "2024-06-10"},
		{Title: "due today", DueDate: today},
		{Title: "upcoming", DueDate: "2024-06-20"},
		{Title: "undated"},
		{Title: "hidden", DeferUntil: "2024-06-30"},
		{Title: "finished", DueDate: "2024-06-01", Status: item.StatusDone},
	}
	for i := range seed {
		require.NoError(t, store.Create(ctx, &seed[i]))
	}

	board := svc.CommandCenterFor(ctx, today)
	assert.Equal(t, 4, board.OpenTotal, "deferred and resolved items excluded")
	assert.Len(t, board.Buckets[dashboard.BucketOverdue], 1)
	assert.Len(t, board.Buckets[dashboard.BucketDueToday], 1)
	assert.Len(t, board.Buckets[dashboard.BucketUpcoming], 1)
	assert.Len(t, board.Buckets[dashboard.BucketNoDueDate], 1)
	assert.Equal(t, "overdue", board.Buckets[dashboard.BucketOverdue][0].DisplayTitle)
}

func TestDashboardService_OverdueCountFor(t *testing.T) {
	svc, store := newDashboardService(t)
	ctx := context.Background()

	seed := []item.Item{
		{Title: "late a", DueDate: "2024-06-01"},
		{Title: "late b", DueDate: "2024-06-10"},
		{Title: "on time", DueDate: "2024-06-20"},
	}
	for i := range seed {
		require.NoError(t, store.Create(ctx, &seed[i]))
	}

	assert.EqualValues(t, 2, svc.OverdueCountFor(ctx, "2024-06-15"))

	// After a carry-forward to that date nothing is overdue anymore.
	_, err := store.CarryForward(ctx, "2024-06-15", "")
	require.NoError(t, err)
	assert.Zero(t, svc.OverdueCountFor(ctx, "2024-06-15"))
}

func TestDashboardService_CommandCenterFor_Empty(t *testing.T) {
	svc, _ := newDashboardService(t)

	board := svc.CommandCenterFor(context.Background(), "2024-06-15")
	assert.Zero(t, board.OpenTotal)
	for _, key := range dashboard.BucketOrder {
		assert.Empty(t, board.Buckets[key])
		assert.Zero(t, board.Counts[key])
	}
}

func TestDashboardService_Metrics(t *testing.T) {
	svc, store := newDashboardService(t)
	ctx := context.Background()
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	nextMonth := time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	overdue := item.Item{Title: "overdue", DueDate: yesterday}
	deferred := item.Item{Title: "deferred", DeferUntil: nextMonth}
	require.NoError(t, store.Create(ctx, &overdue))
	require.NoError(t, store.Create(ctx, &deferred))

	done := item.Item{Title: "done"}
	require.NoError(t, store.Create(ctx, &done))
	now := time.Now()
	_, err := store.Update(ctx, done.ID, item.Fields{
		Status:      ptrStatus(item.StatusDone),
		CompletedAt: &now,
	})
	require.NoError(t, err)

	m := svc.Metrics(ctx)
	assert.EqualValues(t, 2, m.OpenTotal)
	assert.EqualValues(t, 1, m.OverdueTotal)
	assert.EqualValues(t, 1, m.DeferredTotal)
	assert.EqualValues(t, 1, m.CompletedLast7Days)
}

func ptrStatus(s item.Status) *item.Status { return &s }
