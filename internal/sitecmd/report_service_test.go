package sitecmd

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitecmd/internal/core/diary"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/project"
	"github.com/fieldworks/sitecmd/internal/data/db"
	"github.com/fieldworks/sitecmd/internal/data/stores"
)

func newReportFixture(t *testing.T) (*ReportService, *db.DB) {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	svc := NewReportService(
		stores.NewProjectStore(database),
		stores.NewItemStore(database),
		stores.NewDiaryStore(database),
		stores.NewCalendarStore(database),
		stores.NewAuditStore(database),
		zerolog.Nop(),
	)
	return svc, database
}

func TestReportService_Snapshot(t *testing.T) {
	svc, database := newReportFixture(t)
	ctx := context.Background()

	projects := stores.NewProjectStore(database)
	items := stores.NewItemStore(database)
	logs := stores.NewDiaryStore(database)

	p1 := project.Project{Name: "Quarry Road"}
	p2 := project.Project{Name: "Depot"}
	require.NoError(t, projects.Create(ctx, &p1))
	require.NoError(t, projects.Create(ctx, &p2))

	for _, it := range []item.Item{
		{Title: "in p1", ProjectID: p1.ID},
		{Title: "in p2", ProjectID: p2.ID},
		{Title: "unassigned"},
	} {
		itCopy := it
		require.NoError(t, items.Create(ctx, &itCopy))
	}
	l := diary.Log{ProjectID: p1.ID, LogDate: "2024-06-15"}
	require.NoError(t, logs.Create(ctx, &l))

	full, err := svc.Snapshot(ctx, "")
	require.NoError(t, err)
	assert.Len(t, full.Projects, 2)
	assert.Len(t, full.Items, 3)
	assert.Len(t, full.Logs, 1)
	assert.False(t, full.GeneratedAt.IsZero())
	assert.Len(t, full.Audits, 2, "each project-assigned item left an insert row")

	scoped, err := svc.Snapshot(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, scoped.Projects, 1)
	assert.Equal(t, "Quarry Road", scoped.Projects[0].Name)
	require.Len(t, scoped.Items, 1)
	assert.Equal(t, "in p1", scoped.Items[0].Title)
	require.Len(t, scoped.Audits, 1, "the trail follows the project scope")
	assert.Equal(t, scoped.Items[0].ID, scoped.Audits[0].ActionItemID)
}

func TestReportService_Snapshot_UnknownProject(t *testing.T) {
	svc, _ := newReportFixture(t)

	_, err := svc.Snapshot(context.Background(), "missing")
	require.ErrorIs(t, err, project.ErrNotFound)
}

func TestReport_ProjectName(t *testing.T) {
	r := Report{Projects: []project.Project{{ID: "p1", Name: "Quarry Road"}}}

	assert.Equal(t, "Quarry Road", r.ProjectName("p1"))
	assert.Equal(t, "Unknown", r.ProjectName(""))
	assert.Equal(t, "Unknown", r.ProjectName("stale-id"))
}
