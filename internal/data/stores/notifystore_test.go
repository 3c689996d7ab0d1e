package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitecmd/internal/core/notify"
)

func TestNotifyStore_SaveAndList(t *testing.T) {
	store := NewNotifyStore(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	first, err := store.Save(ctx, notify.Notification{
		Level: notify.LevelInfo, Message: "first", CreatedAt: base,
	})
	require.NoError(t, err)
	require.NotZero(t, first)

	second, err := store.Save(ctx, notify.Notification{
		Level: notify.LevelWarning, Message: "second", CreatedAt: base.Add(time.Minute),
	})
	require.NoError(t, err)
	require.Greater(t, second, first)

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Message, "newest first")
	assert.Equal(t, notify.LevelWarning, got[0].Level)
	assert.Equal(t, "first", got[1].Message)
}

func TestNotifyStore_Save_DefaultsCreatedAt(t *testing.T) {
	store := NewNotifyStore(newTestDB(t))
	ctx := context.Background()

	_, err := store.Save(ctx, notify.Notification{Level: notify.LevelInfo, Message: "stamped"})
	require.NoError(t, err)

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestNotifyStore_ClearAndCount(t *testing.T) {
	store := NewNotifyStore(newTestDB(t))
	ctx := context.Background()

	for _, msg := range []string{"a", "b", "c"} {
		_, err := store.Save(ctx, notify.Notification{Level: notify.LevelInfo, Message: msg})
		require.NoError(t, err)
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	require.NoError(t, store.Clear(ctx))

	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
