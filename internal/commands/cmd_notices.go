package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
)

// NoticesCmd implements the sitecmd notices command: the stored
// notification feed (carry-forward results, blocked-item warnings).
type NoticesCmd struct {
	flags *Flags
	app   *sitecmd.App

	clear bool
}

// NewNoticesCmd creates a new notices command.
func NewNoticesCmd(flags *Flags, app *sitecmd.App) *NoticesCmd {
	return &NoticesCmd{flags: flags, app: app}
}

// Register adds the notices command to the application.
func (cmd *NoticesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "notices",
		Usage:     "Show stored notifications",
		UsageText: "sitecmd notices [--clear]",
		Description: `Lists notifications recorded by past operations, newest first.

Examples:
  sitecmd notices
  sitecmd notices --clear`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "delete all notifications",
				Destination: &cmd.clear,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NoticesCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.clear {
		if err := cmd.app.Notices.Clear(ctx); err != nil {
			return fmt.Errorf("clear notices: %w", err)
		}
		_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("cleared"))
		return nil
	}

	notices, err := cmd.app.Notices.List(ctx)
	if err != nil {
		return fmt.Errorf("list notices: %w", err)
	}

	if len(notices) == 0 {
		_, _ = fmt.Fprintln(c.Root().Writer, styles.Muted.Render("no notices"))
		return nil
	}

	for _, n := range notices {
		_, _ = fmt.Fprintf(c.Root().Writer, "%s %s\n",
			styles.Muted.Render(n.CreatedAt.Local().Format("2006-01-02 15:04")),
			styles.NotifyLine(n.Level, n.Message))
	}
	return nil
}
