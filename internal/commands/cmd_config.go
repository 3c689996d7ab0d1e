package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/config"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/pkg/iojson"
)

// ConfigCmd implements the sitecmd config command group.
type ConfigCmd struct {
	flags *Flags
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate the configuration file",
				UsageText:   "sitecmd config validate",
				Description: "Reloads the configuration file from disk and reports whether it parses and validates.",
				Action:      cmd.runValidate,
			},
			{
				Name:      "show",
				Usage:     "Print the effective configuration",
				UsageText: "sitecmd config show",
				Action:    cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	if _, err := config.Load(cmd.flags.ConfigPath, cmd.flags.DataDir); err != nil {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, styles.Error(err.Error()))
		return cli.Exit("", 1)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("configuration is valid"))
	return nil
}

func (cmd *ConfigCmd) runShow(ctx context.Context, c *cli.Command) error {
	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, cmd.flags.Config)
}
