package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/capability"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
)

// CapsCmd implements the sitecmd caps command: shows which optional
// record categories this installation tracks.
type CapsCmd struct {
	flags *Flags
	app   *sitecmd.App
}

// NewCapsCmd creates a new caps command.
func NewCapsCmd(flags *Flags, app *sitecmd.App) *CapsCmd {
	return &CapsCmd{flags: flags, app: app}
}

// Register adds the caps command to the application.
func (cmd *CapsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "caps",
		Usage:     "Show optional record categories",
		UsageText: "sitecmd caps",
		Description: `Shows which optional record categories (crew attendance, work
activities, materials, equipment logs, visitors) are enabled.
Commands that need a disabled category fail up front with a clear
message instead of a storage error.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *CapsCmd) run(ctx context.Context, c *cli.Command) error {
	w := c.Root().Writer

	for _, cat := range capability.All {
		if cmd.app.Caps.Enabled(cat) {
			_, _ = fmt.Fprintln(w, styles.Success(string(cat)))
		} else {
			_, _ = fmt.Fprintf(w, "%s %s\n", string(cat), styles.Muted.Render("(not tracked)"))
		}
	}

	return nil
}
