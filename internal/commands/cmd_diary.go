package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/diary"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
	"github.com/fieldworks/sitecmd/pkg/iojson"
)

// DiaryCmd implements the sitecmd diary command group for daily logs.
type DiaryCmd struct {
	flags *Flags
	app   *sitecmd.App

	// add flags
	addProject    string
	addDate       string
	addWeather    string
	addConditions string
	addNotes      string
	addIncidents  int
	addPriority   string

	// list flags
	listDate    string
	listProject string

	// edit flags
	editWeather    string
	editConditions string
	editNotes      string
	editIncidents  int
	editPriority   string
}

// NewDiaryCmd creates a new diary command.
func NewDiaryCmd(flags *Flags, app *sitecmd.App) *DiaryCmd {
	return &DiaryCmd{flags: flags, app: app}
}

// Register adds the diary command to the application.
func (cmd *DiaryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "diary",
		Aliases: []string{"d"},
		Usage:   "Manage daily site logs",
		Description: `One log per project per day: weather, site conditions, notes, and
safety incidents.

Examples:
  sitecmd diary add --project <id> --weather "overcast, 12C"
  sitecmd diary list --date 2026-08-31`,
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.listCmd(),
			cmd.showCmd(),
			cmd.editCmd(),
			cmd.deleteCmd(),
		},
	})

	return app
}

func (cmd *DiaryCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a daily log",
		UsageText: "sitecmd diary add --project <id> [options]",
		Description: `Adds a log for a project. The date defaults to today; a second log
for the same project and day is rejected.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "project",
				Usage:       "owning project ID",
				Required:    true,
				Destination: &cmd.addProject,
			},
			&cli.StringFlag{
				Name:        "date",
				Usage:       "log date (YYYY-MM-DD), defaults to today",
				Destination: &cmd.addDate,
			},
			&cli.StringFlag{
				Name:        "weather",
				Usage:       "weather summary",
				Destination: &cmd.addWeather,
			},
			&cli.StringFlag{
				Name:        "conditions",
				Usage:       "site conditions",
				Destination: &cmd.addConditions,
			},
			&cli.StringFlag{
				Name:        "notes",
				Usage:       "free-form notes",
				Destination: &cmd.addNotes,
			},
			&cli.IntFlag{
				Name:        "incidents",
				Usage:       "safety incident count",
				Destination: &cmd.addIncidents,
			},
			&cli.StringFlag{
				Name:        "priority",
				Usage:       "log priority (critical, high, medium, low)",
				Destination: &cmd.addPriority,
			},
		},
		Action: cmd.runAdd,
	}
}

func (cmd *DiaryCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List daily logs",
		UsageText: "sitecmd diary list [--date <date>] [--project <id>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "date",
				Usage:       "filter by log date",
				Destination: &cmd.listDate,
			},
			&cli.StringFlag{
				Name:        "project",
				Usage:       "filter by project ID",
				Destination: &cmd.listProject,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *DiaryCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single daily log",
		UsageText: "sitecmd diary show <id>",
		Action:    cmd.runShow,
	}
}

func (cmd *DiaryCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a daily log",
		UsageText: "sitecmd diary edit <id> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "weather",
				Usage:       "new weather summary",
				Destination: &cmd.editWeather,
			},
			&cli.StringFlag{
				Name:        "conditions",
				Usage:       "new site conditions",
				Destination: &cmd.editConditions,
			},
			&cli.StringFlag{
				Name:        "notes",
				Usage:       "new notes",
				Destination: &cmd.editNotes,
			},
			&cli.IntFlag{
				Name:        "incidents",
				Usage:       "new safety incident count",
				Destination: &cmd.editIncidents,
			},
			&cli.StringFlag{
				Name:        "priority",
				Usage:       "new priority",
				Destination: &cmd.editPriority,
			},
		},
		Action: cmd.runEdit,
	}
}

func (cmd *DiaryCmd) deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a daily log",
		UsageText: "sitecmd diary delete <id>",
		Action:    cmd.runDelete,
	}
}

func (cmd *DiaryCmd) runAdd(ctx context.Context, c *cli.Command) error {
	l := diary.Log{
		ProjectID:       cmd.addProject,
		LogDate:         cmd.addDate,
		Weather:         cmd.addWeather,
		Conditions:      cmd.addConditions,
		Notes:           cmd.addNotes,
		SafetyIncidents: cmd.addIncidents,
		Priority:        cmd.addPriority,
	}

	if err := cmd.app.Diary.Create(ctx, &l); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success(fmt.Sprintf("logged %s for %s", l.LogDate, l.ProjectID)))
	return nil
}

func (cmd *DiaryCmd) runList(ctx context.Context, c *cli.Command) error {
	logs, err := cmd.app.Diary.List(ctx, diary.ListFilter{
		Date:      cmd.listDate,
		ProjectID: cmd.listProject,
	})
	if err != nil {
		return fmt.Errorf("list daily logs: %w", err)
	}

	for _, l := range logs {
		if err := iojson.WriteLine(c.Root().Writer, l); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *DiaryCmd) runShow(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd diary show <id>")
	}

	l, err := cmd.app.Diary.Get(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, l)
}

func (cmd *DiaryCmd) runEdit(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd diary edit <id> [options]")
	}

	fields := diary.Fields{}
	if c.IsSet("weather") {
		fields.Weather = &cmd.editWeather
	}
	if c.IsSet("conditions") {
		fields.Conditions = &cmd.editConditions
	}
	if c.IsSet("notes") {
		fields.Notes = &cmd.editNotes
	}
	if c.IsSet("incidents") {
		fields.SafetyIncidents = &cmd.editIncidents
	}
	if c.IsSet("priority") {
		fields.Priority = &cmd.editPriority
	}

	l, err := cmd.app.Diary.Update(ctx, c.Args().Get(0), fields)
	if err != nil {
		return fmt.Errorf("edit daily log: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("updated "+l.ID))
	return nil
}

func (cmd *DiaryCmd) runDelete(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd diary delete <id>")
	}

	if err := cmd.app.Diary.Delete(ctx, c.Args().Get(0)); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("deleted"))
	return nil
}
