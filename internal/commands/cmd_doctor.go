package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/doctor"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/data/stores"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
	"github.com/fieldworks/sitecmd/pkg/iojson"
)

// DoctorCmd implements the sitecmd doctor command.
type DoctorCmd struct {
	flags  *Flags
	app    *sitecmd.App
	format string
	fix    bool
}

// NewDoctorCmd creates a new doctor command.
func NewDoctorCmd(flags *Flags, app *sitecmd.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

// Register adds the doctor command to the application.
func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on the local deployment",
		UsageText:   "sitecmd doctor [options]",
		Description: "Runs diagnostic checks on the database, configuration, and data directory.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "fix",
				Usage:       "repair fixable problems (quarantines a corrupt database)",
				Destination: &cmd.fix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	checks := []doctor.Check{
		doctor.NewDataDirCheck(cmd.flags.DataDir),
		doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath),
		doctor.NewDatabaseCheck(cmd.app.DB.Conn(), func() error {
			return stores.RecoverFromCorruption(cmd.flags.DataDir)
		}),
	}
	results := doctor.RunAll(ctx, checks)

	if cmd.fix {
		cmd.runFixes(ctx, checks, results)
	}

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}
	return cmd.outputText(results)
}

// runFixes invokes Fix on every check that reported a fixable
// non-passing item. Results keep showing the pre-fix state; the next
// doctor run verifies the repair.
func (cmd *DoctorCmd) runFixes(ctx context.Context, checks []doctor.Check, results []doctor.Result) {
	for i, check := range checks {
		fixer, ok := check.(doctor.Fixer)
		if !ok || doctor.CountFixable(results[i:i+1]) == 0 {
			continue
		}

		if err := fixer.Fix(ctx); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, styles.Error(fmt.Sprintf("fix %s: %v", check.Name(), err)))
			continue
		}
		_, _ = fmt.Fprintln(os.Stderr, styles.Success(fmt.Sprintf("fixed %s, run doctor again to verify", check.Name())))
	}
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputText(results []doctor.Result) error {
	w := os.Stderr

	_, _ = fmt.Fprintln(w)
	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.Heading.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.Muted.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.Success("ok")
			case doctor.StatusWarn:
				icon = styles.Warning("--")
			case doctor.StatusFail:
				icon = styles.Error("!!")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.Success(fmt.Sprintf("%d passed", passed)),
		styles.Warning(fmt.Sprintf("%d warnings", warned)),
		styles.Error(fmt.Sprintf("%d failed", failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
