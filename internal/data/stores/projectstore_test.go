package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/project"
)

func TestProjectStore_CreateAndGet(t *testing.T) {
	database := newTestDB(t)
	store := NewProjectStore(database)
	ctx := context.Background()

	p := project.Project{Name: "Riverside Plaza", Location: "Dock St", Client: "Acme"}
	require.NoError(t, store.Create(ctx, &p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, project.StatusActive, p.Status)

	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riverside Plaza", got.Name)
	assert.Equal(t, "Dock St", got.Location)
	assert.Equal(t, "Acme", got.Client)
}

func TestProjectStore_Get_NotFound(t *testing.T) {
	store := NewProjectStore(newTestDB(t))

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, project.ErrNotFound)
}

func TestProjectStore_List_StatusFilter(t *testing.T) {
	database := newTestDB(t)
	store := NewProjectStore(database)
	ctx := context.Background()

	active := project.Project{Name: "Active Site"}
	archived := project.Project{Name: "Old Site"}
	require.NoError(t, store.Create(ctx, &active))
	require.NoError(t, store.Create(ctx, &archived))
	_, err := store.Update(ctx, archived.ID, project.Fields{Status: ptr(project.StatusArchived)})
	require.NoError(t, err)

	all, err := store.List(ctx, project.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyActive, err := store.List(ctx, project.ListFilter{Status: project.StatusActive})
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, active.ID, onlyActive[0].ID)
}

func TestProjectStore_Update_NotFound(t *testing.T) {
	store := NewProjectStore(newTestDB(t))

	_, err := store.Update(context.Background(), "missing", project.Fields{Name: ptr("x")})
	require.ErrorIs(t, err, project.ErrNotFound)
}

func TestProjectStore_Delete(t *testing.T) {
	database := newTestDB(t)
	store := NewProjectStore(database)
	ctx := context.Background()

	p := project.Project{Name: "Empty Site"}
	require.NoError(t, store.Create(ctx, &p))
	require.NoError(t, store.Delete(ctx, p.ID))

	_, err := store.Get(ctx, p.ID)
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestProjectStore_Delete_InUse(t *testing.T) {
	database := newTestDB(t)
	store := NewProjectStore(database)
	items := NewItemStore(database)
	ctx := context.Background()

	p := project.Project{Name: "Busy Site"}
	require.NoError(t, store.Create(ctx, &p))

	it := item.Item{Title: "blocker", ProjectID: p.ID}
	require.NoError(t, items.Create(ctx, &it))

	err := store.Delete(ctx, p.ID)
	require.ErrorIs(t, err, project.ErrInUse)

	// Soft-deleted items keep their rows, so they still block deletion.
	require.NoError(t, items.SoftDelete(ctx, it.ID))
	assert.ErrorIs(t, store.Delete(ctx, p.ID), project.ErrInUse)
}

func TestProjectStore_Delete_NotFound(t *testing.T) {
	store := NewProjectStore(newTestDB(t))

	err := store.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, project.ErrNotFound)
}
