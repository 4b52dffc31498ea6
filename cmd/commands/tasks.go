package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"cloud.google.com/go/civil"
	"github.com/urfave/cli/v3"

	"tasklist/internal/task"
)

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Create a task",
		ArgsUsage: "<title> [description]",
		Action:    runAdd,
	}
}

// NewListCommand returns the list subcommand.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show one page of tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Case-insensitive text in title or description",
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "Only tasks created on this day (YYYY-MM-DD)",
			},
			&cli.BoolFlag{
				Name:  "hide-completed",
				Usage: "Leave out tasks that are done",
			},
			&cli.IntFlag{
				Name:    "page",
				Aliases: []string{"p"},
				Usage:   "Page number, five tasks per page",
				Value:   1,
			},
		},
		Action: runList,
	}
}

// NewShowCommand returns the show subcommand.
func NewShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show task details",
		ArgsUsage: "<id>",
		Action:    runShow,
	}
}

// NewEditCommand returns the edit subcommand.
func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Change a task's title or description",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
		},
		Action: runEdit,
	}
}

// NewToggleCommand returns the toggle subcommand.
func NewToggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Advance a task: new or done -> in progress, in progress -> done",
		ArgsUsage: "<id>",
		Action:    runToggle,
	}
}

// NewDeleteCommand returns the delete subcommand.
func NewDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Remove a task permanently",
		ArgsUsage: "<id>",
		Action:    runDelete,
	}
}

func runAdd(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("usage: %s add <title> [description]", cmd.Root().Name)
	}
	a, err := openApp(cmd, errOut(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	t := a.Store.Create(cmd.Args().Get(0), cmd.Args().Get(1))
	if err := a.Store.SaveErr(); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	fmt.Fprintf(out(cmd), "Created %d: %s\n", t.ID, t.Title)
	return nil
}

func runList(_ context.Context, cmd *cli.Command) error {
	f := task.NewFilter().
		WithSearch(cmd.String("search")).
		WithHideCompleted(cmd.Bool("hide-completed")).
		WithPage(cmd.Int("page"))
	if raw := cmd.String("date"); raw != "" {
		d, err := civil.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", raw)
		}
		f = f.WithDate(d)
	}

	a, err := openApp(cmd, errOut(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	v := task.Derive(a.Store.Tasks(), f)
	w := out(cmd)
	if len(v.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tCREATED\tTITLE\tDESCRIPTION")
		for _, t := range v.Tasks {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				t.ID,
				t.Status.Label(),
				t.CreationDate,
				t.Title,
				t.Description,
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Page %d of %d (%d matching)\n", v.Page, max(v.PageCount, 1), v.Matched)
	return nil
}

func runShow(_ context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	a, err := openApp(cmd, errOut(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.Store.Get(id)
	if err != nil {
		return fmt.Errorf("task %d: %w", id, err)
	}

	w := out(cmd)
	fmt.Fprintf(w, "ID:          %d\n", t.ID)
	fmt.Fprintf(w, "Title:       %s\n", t.Title)
	fmt.Fprintf(w, "Status:      %s\n", t.Status.Label())
	fmt.Fprintf(w, "Created:     %s\n", t.CreationDate)
	if t.Description != "" {
		fmt.Fprintf(w, "\nDescription:\n%s\n", t.Description)
	}
	return nil
}

func runEdit(_ context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	if !cmd.IsSet("title") && !cmd.IsSet("description") {
		return fmt.Errorf("nothing to change: pass --title and/or --description")
	}
	a, err := openApp(cmd, errOut(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.Store.Get(id)
	if err != nil {
		return fmt.Errorf("task %d: %w", id, err)
	}

	var ed task.Editor
	ed.Begin(t)
	if cmd.IsSet("title") {
		if err := ed.SetTitle(cmd.String("title")); err != nil {
			return err
		}
	}
	if cmd.IsSet("description") {
		if err := ed.SetDescription(cmd.String("description")); err != nil {
			return err
		}
	}
	if _, err := ed.Save(a.Store); err != nil {
		return err
	}
	if err := a.Store.SaveErr(); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	fmt.Fprintf(out(cmd), "Updated %d\n", id)
	return nil
}

func runToggle(_ context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	a, err := openApp(cmd, errOut(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	t, ok := a.Store.ToggleStatus(id)
	if err := a.Store.SaveErr(); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if !ok {
		fmt.Fprintf(out(cmd), "No task %d\n", id)
		return nil
	}
	fmt.Fprintf(out(cmd), "%d is now %s\n", t.ID, t.Status.Label())
	return nil
}

func runDelete(_ context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	a, err := openApp(cmd, errOut(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	ok := a.Store.Delete(id)
	if err := a.Store.SaveErr(); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if !ok {
		fmt.Fprintf(out(cmd), "No task %d\n", id)
		return nil
	}
	fmt.Fprintf(out(cmd), "Deleted %d\n", id)
	return nil
}
