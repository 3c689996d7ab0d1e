package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/project"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
)

// ProjectIDCompleter returns a ShellCompleteFunc that suggests active
// project IDs as positional completions. Set this as the ShellComplete
// field on any cli.Command that accepts a project ID argument.
//
// When the user's last typed argument starts with "-", it falls back to
// the default flag completion behavior.
func ProjectIDCompleter(app *sitecmd.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		projects, err := app.Projects.List(ctx, project.ListFilter{Status: project.StatusActive})
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, p := range projects {
			_, _ = fmt.Fprintln(w, p.ID)
		}
	}
}
