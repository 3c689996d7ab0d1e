package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/styles"
	"github.com/fieldworks/sitecmd/internal/core/validate"
	"github.com/fieldworks/sitecmd/internal/sitecmd"
	"github.com/fieldworks/sitecmd/pkg/iojson"
)

// ItemCmd implements the sitecmd item command group.
type ItemCmd struct {
	flags *Flags
	app   *sitecmd.App

	// create flags
	createTitle    string
	createDetails  string
	createCategory string
	createPriority string
	createProject  string
	createDue      string
	createDefer    string
	createPinned   bool

	// list flags
	listStatus   string
	listProject  string
	listCategory string

	// edit flags
	editTitle    string
	editDetails  string
	editPriority string
	editDue      string
	editPinned   bool
	editUnpin    bool

	// defer flags
	deferUntil string
	deferIn    int
	deferClear bool

	// history flags
	historyLimit int

	// import input
	importReader iojson.FileReader[[]importedItem]
	importSource string
}

// importedItem is the accepted wire shape for item import. Unknown
// statuses and priorities fall back to their defaults.
type importedItem struct {
	ProjectID  string `json:"project_id,omitempty"`
	Title      string `json:"title"`
	Details    string `json:"details,omitempty"`
	Category   string `json:"category,omitempty"`
	Priority   string `json:"priority,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
	DeferUntil string `json:"defer_until,omitempty"`
}

// NewItemCmd creates a new item command.
func NewItemCmd(flags *Flags, app *sitecmd.App) *ItemCmd {
	return &ItemCmd{flags: flags, app: app}
}

// Register adds the item command to the application.
func (cmd *ItemCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "item",
		Aliases: []string{"i"},
		Usage:   "Manage action items",
		Description: `Action items are the tracked tasks of a site: punch list entries,
material follow-ups, equipment checks, and anything else with a status
and an optional due date.

Examples:
  sitecmd item create --title "Order rebar" --due 2026-09-05
  sitecmd item list --status open
  sitecmd item move <id> done
  sitecmd item defer <id> --in 7`,
		Commands: []*cli.Command{
			cmd.createCmd(),
			cmd.listCmd(),
			cmd.showCmd(),
			cmd.editCmd(),
			cmd.moveCmd(),
			cmd.deferCmd(),
			cmd.historyCmd(),
			cmd.deleteCmd(),
			cmd.importCmd(),
		},
	})

	return app
}

func (cmd *ItemCmd) createCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Aliases:   []string{"new"},
		Usage:     "Create an action item",
		UsageText: "sitecmd item create [--title <title>] [options]",
		Description: `Creates a new action item. Without --title an interactive form opens.

Priority defaults to medium. Dates are YYYY-MM-DD.

Examples:
  sitecmd item create --title "Order rebar" --priority high --due 2026-09-05
  sitecmd item create`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "title for the item",
				Destination: &cmd.createTitle,
			},
			&cli.StringFlag{
				Name:        "details",
				Aliases:     []string{"d"},
				Usage:       "optional details",
				Destination: &cmd.createDetails,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "item category (free-form, e.g. materials)",
				Destination: &cmd.createCategory,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (critical, high, medium, low)",
				Destination: &cmd.createPriority,
			},
			&cli.StringFlag{
				Name:        "project",
				Usage:       "owning project ID",
				Destination: &cmd.createProject,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due date (YYYY-MM-DD)",
				Destination: &cmd.createDue,
			},
			&cli.StringFlag{
				Name:        "defer",
				Usage:       "hide from active views until this date (YYYY-MM-DD)",
				Destination: &cmd.createDefer,
			},
			&cli.BoolFlag{
				Name:        "pinned",
				Usage:       "pin the item",
				Destination: &cmd.createPinned,
			},
		},
		Action: cmd.runCreate,
	}
}

func (cmd *ItemCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List action items",
		UsageText: "sitecmd item list [--status <status>] [--project <id>] [--category <cat>]",
		Description: `Lists action items as JSON lines, newest first.

Examples:
  sitecmd item list
  sitecmd item list --status blocked
  sitecmd item list --project <id> --category materials`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (open, in_progress, blocked, done, cancelled)",
				Destination: &cmd.listStatus,
			},
			&cli.StringFlag{
				Name:        "project",
				Usage:       "filter by project ID",
				Destination: &cmd.listProject,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "filter by category",
				Destination: &cmd.listCategory,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *ItemCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single action item",
		UsageText: "sitecmd item show <id>",
		Action:    cmd.runShow,
	}
}

func (cmd *ItemCmd) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit an action item",
		UsageText: "sitecmd item edit <id> [options]",
		Description: `Applies a partial update as a single atomic write. Only the provided
flags change; pass --due "" to clear the due date.

Examples:
  sitecmd item edit <id> --priority critical
  sitecmd item edit <id> --due 2026-09-12 --title "Order rebar (revised)"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "new title",
				Destination: &cmd.editTitle,
			},
			&cli.StringFlag{
				Name:        "details",
				Aliases:     []string{"d"},
				Usage:       "new details",
				Destination: &cmd.editDetails,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "new priority",
				Destination: &cmd.editPriority,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "new due date, empty string clears it",
				Destination: &cmd.editDue,
			},
			&cli.BoolFlag{
				Name:        "pin",
				Usage:       "pin the item",
				Destination: &cmd.editPinned,
			},
			&cli.BoolFlag{
				Name:        "unpin",
				Usage:       "unpin the item",
				Destination: &cmd.editUnpin,
			},
		},
		Action: cmd.runEdit,
	}
}

func (cmd *ItemCmd) moveCmd() *cli.Command {
	return &cli.Command{
		Name:      "move",
		Aliases:   []string{"mv"},
		Usage:     "Move an item to a new status",
		UsageText: "sitecmd item move <id> <status>",
		Description: `Moves an item to any of the five statuses. Moving to done stamps the
completion time; moving to cancelled stamps the cancellation time.
Those stamps survive later moves back to an active status.

Examples:
  sitecmd item move <id> in_progress
  sitecmd item move <id> done`,
		Action: cmd.runMove,
	}
}

func (cmd *ItemCmd) deferCmd() *cli.Command {
	return &cli.Command{
		Name:      "defer",
		Usage:     "Hide an item from active views until a date",
		UsageText: "sitecmd item defer <id> [--until <date> | --in <days> | --clear]",
		Description: `Defers an item. Deferred items stay out of the command center until
their date arrives but remain visible in item list.

Without --until or --in an interactive quick pick opens.

Examples:
  sitecmd item defer <id> --until 2026-09-10
  sitecmd item defer <id> --in 7
  sitecmd item defer <id> --clear`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "until",
				Usage:       "defer until this date (YYYY-MM-DD)",
				Destination: &cmd.deferUntil,
			},
			&cli.IntFlag{
				Name:        "in",
				Usage:       "defer by this many days from today",
				Destination: &cmd.deferIn,
			},
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "remove the defer date",
				Destination: &cmd.deferClear,
			},
		},
		Action: cmd.runDefer,
	}
}

func (cmd *ItemCmd) historyCmd() *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Show an item's change history",
		UsageText: "sitecmd item history <id> [--limit <n>]",
		Description: `Lists the item's audit rows as JSON lines, most recent first. Every
create, edit, move, defer, and delete is recorded with before and
after snapshots.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum rows to return",
				Value:       0,
				Destination: &cmd.historyLimit,
			},
		},
		Action: cmd.runHistory,
	}
}

func (cmd *ItemCmd) deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete an action item",
		UsageText: "sitecmd item delete <id>",
		Description: `Soft-deletes an item. It disappears from every list and board, but
its audit history is kept.`,
		Action: cmd.runDelete,
	}
}

func (cmd *ItemCmd) importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import action items from JSON",
		UsageText: "sitecmd item import [--file <path>] [--source <name>]",
		Description: `Reads a JSON array of items from a file or stdin and creates them.
Each element needs at least a title; every other field is optional.

Examples:
  sitecmd item import -f punch-list.json
  some-exporter | sitecmd item import --source punchapp`,
		Flags: []cli.Flag{
			cmd.importReader.Flag(),
			&cli.StringFlag{
				Name:        "source",
				Usage:       "source label recorded on each imported item",
				Value:       "import",
				Destination: &cmd.importSource,
			},
		},
		Action: cmd.runImport,
	}
}

func (cmd *ItemCmd) runImport(ctx context.Context, c *cli.Command) error {
	incoming, err := cmd.importReader.Read()
	if err != nil {
		return err
	}

	created := 0
	for i, in := range incoming {
		it := item.Item{
			ProjectID:  in.ProjectID,
			Title:      strings.TrimSpace(in.Title),
			Details:    in.Details,
			Category:   in.Category,
			Priority:   item.Priority(in.Priority),
			DueDate:    in.DueDate,
			DeferUntil: in.DeferUntil,
			Source:     cmd.importSource,
		}

		if err := cmd.app.Items.Create(ctx, &it); err != nil {
			return fmt.Errorf("import item %d of %d: %w", i+1, len(incoming), err)
		}
		created++
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success(fmt.Sprintf("imported %d item(s)", created)))
	return nil
}

func (cmd *ItemCmd) runCreate(ctx context.Context, c *cli.Command) error {
	if cmd.createTitle == "" {
		if err := cmd.createForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	it := item.Item{
		ProjectID:  cmd.createProject,
		Title:      strings.TrimSpace(cmd.createTitle),
		Details:    cmd.createDetails,
		Category:   cmd.createCategory,
		Priority:   item.Priority(cmd.createPriority),
		DueDate:    cmd.createDue,
		DeferUntil: cmd.createDefer,
		Pinned:     cmd.createPinned,
	}

	if err := cmd.app.Items.Create(ctx, &it); err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("created "+it.ID))
	return nil
}

func (cmd *ItemCmd) createForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validate.Title).
				Value(&cmd.createTitle),
			huh.NewText().
				Title("Details").
				Value(&cmd.createDetails),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Critical", "critical"),
					huh.NewOption("High", "high"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Low", "low"),
				).
				Value(&cmd.createPriority),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD, blank for none").
				Validate(validate.Date).
				Value(&cmd.createDue),
		),
	).Run()
}

func (cmd *ItemCmd) runList(ctx context.Context, c *cli.Command) error {
	filter := item.ListFilter{
		ProjectID: cmd.listProject,
		Category:  cmd.listCategory,
	}

	if cmd.listStatus != "" {
		status := item.Status(cmd.listStatus)
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q: must be one of open, in_progress, blocked, done, cancelled", cmd.listStatus)
		}
		filter.Status = status
	}

	items, err := cmd.app.Items.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	for _, it := range items {
		if err := iojson.WriteLine(c.Root().Writer, it); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *ItemCmd) runShow(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd item show <id>")
	}

	it, err := cmd.app.Items.Get(ctx, c.Args().Get(0))
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, it)
}

func (cmd *ItemCmd) runEdit(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd item edit <id> [options]")
	}
	id := c.Args().Get(0)

	fields := item.Fields{}
	if c.IsSet("title") {
		fields.Title = &cmd.editTitle
	}
	if c.IsSet("details") {
		fields.Details = &cmd.editDetails
	}
	if c.IsSet("priority") {
		p := item.Priority(cmd.editPriority)
		fields.Priority = &p
	}
	if c.IsSet("due") {
		fields.DueDate = &cmd.editDue
	}
	if cmd.editPinned {
		pinned := true
		fields.Pinned = &pinned
	}
	if cmd.editUnpin {
		pinned := false
		fields.Pinned = &pinned
	}

	if fields.Empty() {
		return fmt.Errorf("nothing to change; pass at least one flag")
	}

	it, err := cmd.app.Items.Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("edit item: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("updated "+it.ID))
	return nil
}

func (cmd *ItemCmd) runMove(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: sitecmd item move <id> <status>")
	}

	id := c.Args().Get(0)
	target := item.Status(c.Args().Get(1))

	it, err := cmd.app.Items.Transition(ctx, id, target)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s %s\n", it.ID, styles.StatusLabel(it.Status))
	return nil
}

func (cmd *ItemCmd) runDefer(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd item defer <id> [--until <date> | --in <days> | --clear]")
	}
	id := c.Args().Get(0)

	if cmd.deferClear {
		it, err := cmd.app.Items.ClearDefer(ctx, id)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("defer cleared for "+it.ID))
		return nil
	}

	until := cmd.deferUntil
	if until == "" && cmd.deferIn > 0 {
		var err error
		until, err = item.AddDays(item.Today(), cmd.deferIn)
		if err != nil {
			return err
		}
	}

	if until == "" {
		picked, err := cmd.deferPickForm()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
		until = picked
	}

	it, err := cmd.app.Items.Defer(ctx, id, until)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success(fmt.Sprintf("deferred %s until %s", it.ID, until)))
	return nil
}

func (cmd *ItemCmd) deferPickForm() (string, error) {
	today := item.Today()
	picks := cmd.app.Items.QuickPicks(today)

	options := make([]huh.Option[string], 0, len(picks))
	for _, d := range picks {
		options = append(options, huh.NewOption(d, d))
	}

	var until string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Defer until").
				Options(options...).
				Value(&until),
		),
	).Run()
	return until, err
}

func (cmd *ItemCmd) runHistory(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd item history <id>")
	}

	rows, err := cmd.app.Items.History(ctx, c.Args().Get(0), cmd.historyLimit)
	if err != nil {
		return fmt.Errorf("item history: %w", err)
	}

	for _, row := range rows {
		if err := iojson.WriteLine(c.Root().Writer, row); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *ItemCmd) runDelete(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: sitecmd item delete <id>")
	}

	id := c.Args().Get(0)
	if err := cmd.app.Items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, styles.Success("deleted "+id))
	return nil
}
