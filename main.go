package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/commands"
	"github.com/fieldworks/sitecmd/internal/core/capability"
	"github.com/fieldworks/sitecmd/internal/core/config"
	"github.com/fieldworks/sitecmd/internal/core/eventbus"
	"github.com/fieldworks/sitecmd/internal/core/notify"
	"github.com/fieldworks/sitecmd/internal/data/db"
	"github.com/fieldworks/sitecmd/internal/data/stores"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
	"github.com/fieldworks/sitecmd/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// parseTracking maps configured category names to a capability set,
// rejecting unknown names up front.
func parseTracking(names []string) (*capability.Set, error) {
	cats := make([]capability.Category, 0, len(names))
	for _, name := range names {
		cat := capability.Category(name)
		found := false
		for _, known := range capability.All {
			if cat == known {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown tracking category %q", name)
		}
		cats = append(cats, cat)
	}
	return capability.NewSet(cats...), nil
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &sitecmd.App{}
		database  *db.DB
		busCancel context.CancelFunc
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "sitecmd",
		Usage:     "Track action items, daily logs, and schedules across job sites",
		UsageText: "sitecmd [global options] command [command options]",
		Description: `sitecmd is a site diary and task tracker for construction work.

Action items carry a five-state lifecycle with due dates and defer
dates; the board command groups everything open by urgency. Daily
logs, calendar notes, and per-item change history round out the
record keeping.

Run 'sitecmd board' to see everything that needs attention today.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SITECMD_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/sitecmd.log)",
				Sources:     cli.EnvVars("SITECMD_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SITECMD_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("SITECMD_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/sitecmd.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "sitecmd.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			caps, err := parseTracking(cfg.Tracking)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Open database connection
			dbOpts := db.OpenOptions{
				MaxOpenConns: cfg.Database.MaxOpenConns,
				MaxIdleConns: cfg.Database.MaxIdleConns,
				BusyTimeout:  cfg.Database.BusyTimeout,
			}
			database, err = db.Open(cfg.DataDir, dbOpts)
			if err != nil {
				if stores.IsCorruptionError(err) {
					return ctx, fmt.Errorf("open database: %w (run 'sitecmd doctor --fix' to quarantine the damaged file)", err)
				}
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// Start the event bus and its consumers
			bus := eventbus.New(64)
			busCtx, cancel := context.WithCancel(context.Background())
			busCancel = cancel
			go bus.Start(busCtx)

			eventbus.RegisterDebugLogger(bus, log.Logger)
			eventbus.NewNotificationRouter(bus).Register()

			// Persist published notifications
			notifyStore := stores.NewNotifyStore(database)
			bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
				n := notify.Notification{Level: p.Level, Message: p.Message}
				if _, err := notifyStore.Save(context.Background(), n); err != nil {
					log.Error().Err(err).Msg("save notification")
				}
			})

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*app = *sitecmd.NewApp(cfg, database, bus, caps, log.Logger)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Drain the event bus before the database closes so
			// notifications published by the command still persist.
			if app.Bus != nil {
				app.Bus.Stop()
			}
			if busCancel != nil {
				busCancel()
			}

			// Close database connection
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	boardCmd := commands.NewBoardCmd(flags, app)

	root = boardCmd.Register(root)
	root = commands.NewItemCmd(flags, app).Register(root)
	root = commands.NewCarryCmd(flags, app).Register(root)
	root = commands.NewProjectCmd(flags, app).Register(root)
	root = commands.NewDiaryCmd(flags, app).Register(root)
	root = commands.NewCalendarCmd(flags, app).Register(root)
	root = commands.NewReportCmd(flags, app).Register(root)
	root = commands.NewNoticesCmd(flags, app).Register(root)
	root = commands.NewCapsCmd(flags, app).Register(root)
	root = commands.NewConfigCmd(flags).Register(root)
	root = commands.NewDoctorCmd(flags, app).Register(root)

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
