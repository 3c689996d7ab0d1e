package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/export"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
)

// ReportCmd implements the sitecmd report command: file exports of the
// tracked data.
type ReportCmd struct {
	flags *Flags
	app   *sitecmd.App

	format  string
	out     string
	project string
	logs    bool
}

// NewReportCmd creates a new report command.
func NewReportCmd(flags *Flags, app *sitecmd.App) *ReportCmd {
	return &ReportCmd{flags: flags, app: app}
}

// Register adds the report command to the application.
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Export tracked data to a file",
		UsageText: "sitecmd report --out <path> [--format csv|json] [--project <id>] [--logs]",
		Description: `Exports a snapshot of tracked data. CSV covers action items (or
daily logs with --logs); JSON covers everything.

Examples:
  sitecmd report --out items.csv
  sitecmd report --out site.json --format json --project <id>
  sitecmd report --out logs.csv --logs`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (csv, json)",
				Value:       "csv",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file path",
				Required:    true,
				Destination: &cmd.out,
			},
			&cli.StringFlag{
				Name:        "project",
				Usage:       "scope to one project ID",
				Destination: &cmd.project,
			},
			&cli.BoolFlag{
				Name:        "logs",
				Usage:       "export daily logs instead of action items (csv only)",
				Destination: &cmd.logs,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	report, err := cmd.app.Reports.Snapshot(ctx, cmd.project)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	switch cmd.format {
	case "csv":
		if cmd.logs {
			err = export.LogsToCSV(report, cmd.out)
		} else {
			err = export.ToCSV(report, cmd.out)
		}
	case "json":
		err = export.ToJSON(report, cmd.out)
	default:
		return fmt.Errorf("invalid format %q: must be csv or json", cmd.format)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("wrote "+cmd.out))
	return nil
}
