package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/calendar"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
	"github.com/fieldworks/sitecmd/pkg/iojson"
)

// CalendarCmd implements the sitecmd calendar command group for
// scheduled notes.
type CalendarCmd struct {
	flags *Flags
	app   *sitecmd.App

	// add flags
	addDate     string
	addTitle    string
	addDesc     string
	addType     string
	addPriority string
	addProject  string
	addItem     string

	// list flags
	listProject string
	listMonth   string
}

// NewCalendarCmd creates a new calendar command.
func NewCalendarCmd(flags *Flags, app *sitecmd.App) *CalendarCmd {
	return &CalendarCmd{flags: flags, app: app}
}

// Register adds the calendar command to the application.
func (cmd *CalendarCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "calendar",
		Aliases: []string{"cal"},
		Usage:   "Manage scheduled notes",
		Description: `Calendar notes are dated reminders: inspections, deliveries,
meetings. They carry a plain done flag, not the item lifecycle, and
may link to a project or an action item.

Examples:
  sitecmd calendar add --date 2026-09-03 --title "Concrete pour inspection"
  sitecmd calendar list --month 2026-09
  sitecmd calendar done <id>`,
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.listCmd(),
			cmd.doneCmd(),
			cmd.deleteCmd(),
		},
	})

	return app
}

func (cmd *CalendarCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a scheduled note",
		UsageText: "sitecmd calendar add --date <date> --title <title> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "date",
				Usage:       "note date (YYYY-MM-DD)",
				Required:    true,
				Destination: &cmd.addDate,
			},
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "note title",
				Required:    true,
				Destination: &cmd.addTitle,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "optional description",
				Destination: &cmd.addDesc,
			},
			&cli.StringFlag{
				Name:        "type",
				Usage:       "note type (e.g. inspection, delivery, meeting)",
				Destination: &cmd.addType,
			},
			&cli.StringFlag{
				Name:        "priority",
				Usage:       "priority (critical, high, medium, low)",
				Destination: &cmd.addPriority,
			},
			&cli.StringFlag{
				Name:        "project",
				Usage:       "linked project ID",
				Destination: &cmd.addProject,
			},
			&cli.StringFlag{
				Name:        "item",
				Usage:       "linked action item ID",
				Destination: &cmd.addItem,
			},
		},
		Action: cmd.runAdd,
	}
}

func (cmd *CalendarCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List scheduled notes",
		UsageText: "sitecmd calendar list [--month <YYYY-MM>] [--project <id>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "month",
				Aliases:     []string{"m"},
				Usage:       "restrict to one calendar month (YYYY-MM)",
				Destination: &cmd.listMonth,
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

func (cmd *CalendarCmd) doneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a note completed",
		UsageText: "sitecmd calendar done <id>",
		Action:    cmd.runDone,
	}
}

func (cmd *CalendarCmd) deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a note",
		UsageText: "sitecmd calendar delete <id>",
		Action:    cmd.runDelete,
	}
}

func (cmd *CalendarCmd) runAdd(ctx context.Context, c *cli.Command) error {
	n := calendar.Note{
		NoteDate:     cmd.addDate,
		Title:        cmd.addTitle,
		Description:  cmd.addDesc,
		NoteType:     cmd.addType,
		Priority:     cmd.addPriority,
		ProjectID:    cmd.addProject,
		ActionItemID: cmd.addItem,
	}

	if err := cmd.app.Calendar.Create(ctx, &n); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("created "+n.ID))
	return nil
}

func (cmd *CalendarCmd) runList(ctx context.Context, c *cli.Command) error {
	filter := calendar.ListFilter{ProjectID: cmd.listProject}

	if cmd.listMonth != "" {
		t, err := time.Parse("2006-01", cmd.listMonth)
		if err != nil {
			return fmt.Errorf("invalid month %q: want YYYY-MM", cmd.listMonth)
		}
		filter.Year = t.Year()
		filter.Month = t.Month()
	}

	notes, err := cmd.app.Calendar.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("list calendar notes: %w", err)
	}

	for _, n := range notes {
		if err := iojson.WriteLine(c.Root().Writer, n); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *CalendarCmd) runDone(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd calendar done <id>")
	}

	n, err := cmd.app.Calendar.Complete(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("completed "+n.Title))
	return nil
}

func (cmd *CalendarCmd) runDelete(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd calendar delete <id>")
	}

	if err := cmd.app.Calendar.Delete(ctx, c.Args().Get(0)); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("deleted"))
	return nil
}
