// Package sitecmd is the service layer: domain logic over the stores,
// consumed by the CLI commands.
package sitecmd

import (
	"github.com/rs/zerolog"

	"github.com/fieldworks/sitecmd/internal/core/capability"
	"github.com/fieldworks/sitecmd/internal/core/config"
	"github.com/fieldworks/sitecmd/internal/core/eventbus"
	"github.com/fieldworks/sitecmd/internal/core/notify"
	"github.com/fieldworks/sitecmd/internal/data/db"
	"github.com/fieldworks/sitecmd/internal/data/stores"
)

// App is the central entry point for all sitecmd operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Items     *ItemService
	Dashboard *DashboardService
	Projects  *ProjectService
	Diary     *DiaryService
	Calendar  *CalendarService
	Reports   *ReportService

	Caps    *capability.Set
	Notices notify.Store
	Config  *config.Config
	DB      *db.DB
	Bus     *eventbus.EventBus
}

// NewApp wires stores, services, and the event bus into an App.
func NewApp(cfg *config.Config, database *db.DB, bus *eventbus.EventBus, caps *capability.Set, log zerolog.Logger) *App {
	itemStore := stores.NewItemStore(database)
	projectStore := stores.NewProjectStore(database)
	diaryStore := stores.NewDiaryStore(database)
	calendarStore := stores.NewCalendarStore(database)
	auditStore := stores.NewAuditStore(database)
	notifyStore := stores.NewNotifyStore(database)

	return &App{
		Items:     NewItemService(itemStore, auditStore, bus, caps, cfg.Defer.QuickPickDays, log),
		Dashboard: NewDashboardService(itemStore, itemStore, cfg.Dashboard.BucketCap, log),
		Projects:  NewProjectService(projectStore, log),
		Diary:     NewDiaryService(diaryStore, log),
		Calendar:  NewCalendarService(calendarStore, log),
		Reports:   NewReportService(projectStore, itemStore, diaryStore, calendarStore, auditStore, log),
		Caps:      caps,
		Notices:   notifyStore,
		Config:    cfg,
		DB:        database,
		Bus:       bus,
	}
}
