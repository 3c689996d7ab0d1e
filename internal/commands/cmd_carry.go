package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
)

// CarryCmd implements the sitecmd carry command: bulk-move overdue
// items to a new due date.
type CarryCmd struct {
	flags *Flags
	app   *sitecmd.App

	to      string
	project string
	yes     bool
}

// NewCarryCmd creates a new carry command.
func NewCarryCmd(flags *Flags, app *sitecmd.App) *CarryCmd {
	return &CarryCmd{flags: flags, app: app}
}

// Register adds the carry command to the application.
func (cmd *CarryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "carry",
		Usage:     "Carry overdue items forward to a new date",
		UsageText: "sitecmd carry [--to <date>] [--project <id>] [--yes]",
		Description: `Moves the due date of every unresolved item that is overdue relative
to the target date. The target defaults to today. Each moved item
gets an audit row.

Examples:
  sitecmd carry
  sitecmd carry --to 2026-09-02 --project <id>
  sitecmd carry --yes`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "to",
				Usage:       "target date (YYYY-MM-DD), defaults to today",
				Destination: &cmd.to,
			},
			&cli.StringFlag{
				Name:        "project",
				Usage:       "scope to one project ID",
				Destination: &cmd.project,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CarryCmd) run(ctx context.Context, c *cli.Command) error {
	target := cmd.to
	if target == "" {
		target = item.Today()
	}
	if !item.IsDate(target) {
		return fmt.Errorf("%w: %q", item.ErrInvalidDate, target)
	}

	if !cmd.yes {
		scope := "all projects"
		if cmd.project != "" {
			scope = "project " + cmd.project
		}

		var confirmed bool
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Carry overdue items forward to %s?", target)).
					Description("Scope: " + scope).
					Value(&confirmed),
			),
		).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			return nil
		}
	}

	affected, err := cmd.app.Items.CarryForward(ctx, target, cmd.project)
	if err != nil {
		return err
	}

	if affected == 0 {
		_, _ = fmt.Fprintln(c.Root().Writer, styles.Muted.Render("nothing overdue, nothing moved"))
		return nil
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success(fmt.Sprintf("moved %d item(s) to %s", affected, target)))

	// Re-count so the user sees the refreshed state without another command.
	if remaining := cmd.app.Dashboard.OverdueCountFor(ctx, target); remaining > 0 {
		_, _ = fmt.Fprintln(c.Root().Writer, styles.Muted.Render(fmt.Sprintf("%d item(s) still overdue, see 'sitecmd board'", remaining)))
	} else {
		_, _ = fmt.Fprintln(c.Root().Writer, styles.Muted.Render("nothing overdue remains"))
	}
	return nil
}
