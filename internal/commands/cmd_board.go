package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/dashboard"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
	"github.com/fieldworks/sitecmd/pkg/iojson"
)

// BoardCmd implements the sitecmd board command: the command center
// view of open items bucketed by due date.
type BoardCmd struct {
	flags *Flags
	app   *sitecmd.App

	asJSON bool
	date   string
}

// NewBoardCmd creates a new board command.
func NewBoardCmd(flags *Flags, app *sitecmd.App) *BoardCmd {
	return &BoardCmd{flags: flags, app: app}
}

// Register adds the board command to the application.
func (cmd *BoardCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "board",
		Aliases:   []string{"b"},
		Usage:     "Show the command center board",
		UsageText: "sitecmd board [--json] [--date <date>]",
		Description: `Shows all open items grouped into Overdue, Due Today, Upcoming, and
No Due Date, sorted by priority then due date. Deferred items are
hidden until their date arrives. Bucket headers always show the full
count even when the list below is capped.

Examples:
  sitecmd board
  sitecmd board --json
  sitecmd board --date 2026-09-01`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit the board as JSON instead of styled text",
				Destination: &cmd.asJSON,
			},
			&cli.StringFlag{
				Name:        "date",
				Usage:       "build the board relative to this date instead of today",
				Destination: &cmd.date,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BoardCmd) run(ctx context.Context, c *cli.Command) error {
	today := cmd.date
	if today == "" {
		today = item.Today()
	} else if !item.IsDate(today) {
		return fmt.Errorf("%w: %q", item.ErrInvalidDate, today)
	}

	board := cmd.app.Dashboard.CommandCenterFor(ctx, today)
	metrics := cmd.app.Dashboard.Metrics(ctx)

	if cmd.asJSON {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, struct {
			Date    string            `json:"date"`
			Metrics dashboard.Metrics `json:"metrics"`
			Board   dashboard.Board   `json:"board"`
		}{Date: today, Metrics: metrics, Board: board})
	}

	w := c.Root().Writer

	_, _ = fmt.Fprintln(w, styles.Heading.Render("Command Center · "+today))
	_, _ = fmt.Fprintln(w, styles.Muted.Render(fmt.Sprintf(
		"open %d · overdue %d · deferred %d · done last 7d %d",
		metrics.OpenTotal, metrics.OverdueTotal, metrics.DeferredTotal, metrics.CompletedLast7Days)))
	_, _ = fmt.Fprintln(w)

	for _, key := range dashboard.BucketOrder {
		count := board.Counts[key]
		if count == 0 {
			continue
		}

		_, _ = fmt.Fprintln(w, styles.BucketHeading(key, count))
		for _, e := range board.Buckets[key] {
			cmd.printEntry(w, e)
		}

		if shown := len(board.Buckets[key]); shown < count {
			_, _ = fmt.Fprintln(w, styles.Muted.Render(fmt.Sprintf("  … %d more", count-shown)))
		}
		_, _ = fmt.Fprintln(w)
	}

	if board.OpenTotal == 0 {
		_, _ = fmt.Fprintln(w, styles.Muted.Render("nothing open, all clear"))
	}
	return nil
}

func (cmd *BoardCmd) printEntry(w io.Writer, e dashboard.Entry) {
	due := e.Due
	if due == "" {
		due = "no due date"
	}

	line := fmt.Sprintf("  %s %s", styles.PriorityBadge(e.Rank), e.DisplayTitle)
	meta := fmt.Sprintf("%s · %s", e.Project, due)
	if e.Job != "" {
		meta = fmt.Sprintf("%s (%s) · %s", e.Project, e.Job, due)
	}

	_, _ = fmt.Fprintln(w, line)
	_, _ = fmt.Fprintln(w, "    "+styles.Muted.Render(meta))
}
