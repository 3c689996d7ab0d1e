package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/project"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
	"github.com/fieldworks/sitecmd/pkg/iojson"
)

// ProjectCmd implements the sitecmd project command group.
type ProjectCmd struct {
	flags *Flags
	app   *sitecmd.App

	// create flags
	createName     string
	createJob      string
	createLocation string
	createClient   string

	// list flags
	listStatus string

	// edit flags
	editName     string
	editJob      string
	editLocation string
	editClient   string
}

// NewProjectCmd creates a new project command.
func NewProjectCmd(flags *Flags, app *sitecmd.App) *ProjectCmd {
	return &ProjectCmd{flags: flags, app: app}
}

// Register adds the project command to the application.
func (cmd *ProjectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Manage projects",
		Description: `Projects are the jobs or sites that own action items, daily logs,
and calendar notes.

Examples:
  sitecmd project create --name "Riverside Tower" --job 24-108
  sitecmd project list
  sitecmd project archive <id>`,
		Commands: []*cli.Command{
			cmd.createCmd(),
			cmd.listCmd(),
			cmd.showCmd(),
			cmd.editCmd(),
			cmd.archiveCmd(),
			cmd.deleteCmd(),
		},
	})

	return app
}

func (cmd *ProjectCmd) createCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"new"},
		Usage:     "Create a project",
		UsageText: "sitecmd project create --name <name> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "project name",
				Required:    true,
				Destination: &cmd.createName,
			},
			&cli.StringFlag{
				Name:        "job",
				Usage:       "job number",
				Destination: &cmd.createJob,
			},
			&cli.StringFlag{
				Name:        "location",
				Usage:       "site location",
				Destination: &cmd.createLocation,
			},
			&cli.StringFlag{
				Name:        "client",
				Usage:       "client name",
				Destination: &cmd.createClient,
			},
		},
		Action: cmd.runCreate,
	}
}

func (cmd *ProjectCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List projects",
		UsageText: "sitecmd project list [--status <status>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (active, archived)",
				Destination: &cmd.listStatus,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *ProjectCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:          "show",
		Usage:         "Show a single project",
		UsageText:     "sitecmd project show <id>",
		ShellComplete: ProjectIDCompleter(cmd.app),
		Action:        cmd.runShow,
	}
}

func (cmd *ProjectCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a project",
		UsageText: "sitecmd project edit <id> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "new name",
				Destination: &cmd.editName,
			},
			&cli.StringFlag{
				Name:        "job",
				Usage:       "new job number",
				Destination: &cmd.editJob,
			},
			&cli.StringFlag{
				Name:        "location",
				Usage:       "new location",
				Destination: &cmd.editLocation,
			},
			&cli.StringFlag{
				Name:        "client",
				Usage:       "new client",
				Destination: &cmd.editClient,
			},
		},
		ShellComplete: ProjectIDCompleter(cmd.app),
		Action:        cmd.runEdit,
	}
}

func (cmd *ProjectCmd) archiveCmd() *cli.Command {
	return &cli.Command{
		Name:      "archive",
		Usage:     "Archive a project",
		UsageText: "sitecmd project archive <id>",
		Description: `Archives a project without touching its items. Archived projects
drop out of the default list but keep their history.`,
		ShellComplete: ProjectIDCompleter(cmd.app),
		Action:        cmd.runArchive,
	}
}

func (cmd *ProjectCmd) deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a project",
		UsageText: "sitecmd project delete <id>",
		Description: `Deletes a project. Fails while any items, logs, or notes still
reference it; archive instead to keep history.`,
		ShellComplete: ProjectIDCompleter(cmd.app),
		Action:        cmd.runDelete,
	}
}

func (cmd *ProjectCmd) runCreate(ctx context.Context, c *cli.Command) error {
	p := project.Project{
		Name:      cmd.createName,
		JobNumber: cmd.createJob,
		Location:  cmd.createLocation,
		Client:    cmd.createClient,
	}

	if err := cmd.app.Projects.Create(ctx, &p); err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("created "+p.ID))
	return nil
}

func (cmd *ProjectCmd) runList(ctx context.Context, c *cli.Command) error {
	filter := project.ListFilter{}
	if cmd.listStatus != "" {
		status := project.Status(cmd.listStatus)
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q: must be active or archived", cmd.listStatus)
		}
		filter.Status = status
	}

	projects, err := cmd.app.Projects.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	for _, p := range projects {
		if err := iojson.WriteLine(c.Root().Writer, p); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *ProjectCmd) runShow(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd project show <id>")
	}

	p, err := cmd.app.Projects.Get(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, p)
}

func (cmd *ProjectCmd) runEdit(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd project edit <id> [options]")
	}

	fields := project.Fields{}
	if c.IsSet("name") {
		fields.Name = &cmd.editName
	}
	if c.IsSet("job") {
		fields.JobNumber = &cmd.editJob
	}
	if c.IsSet("location") {
		fields.Location = &cmd.editLocation
	}
	if c.IsSet("client") {
		fields.Client = &cmd.editClient
	}

	p, err := cmd.app.Projects.Update(ctx, c.Args().Get(0), fields)
	if err != nil {
		return fmt.Errorf("edit project: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("updated "+p.ID))
	return nil
}

func (cmd *ProjectCmd) runArchive(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd project archive <id>")
	}

	p, err := cmd.app.Projects.Archive(ctx, c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("archive project: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("archived "+p.Name))
	return nil
}

func (cmd *ProjectCmd) runDelete(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd project delete <id>")
	}

	if err := cmd.app.Projects.Delete(ctx, c.Args().Get(0)); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("deleted"))
	return nil
}
