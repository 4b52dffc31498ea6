package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v3"

	"tasklist/internal/app"
	"tasklist/internal/config"
)

// NewRootCommand returns the top-level CLI command. Without a subcommand it
// starts the interactive UI.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "A personal task list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ResolveConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			NewAddCommand(),
			NewListCommand(),
			NewShowCommand(),
			NewEditCommand(),
			NewToggleCommand(),
			NewDeleteCommand(),
		},
	}
}

// openApp loads the config named by --config and opens the task store.
func openApp(cmd *cli.Command, logOut io.Writer) (*app.App, error) {
	cfg, err := config.LoadOrCreate(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg, app.Options{Debug: cmd.Bool("debug"), LogFallback: logOut})
}

func out(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func errOut(cmd *cli.Command) io.Writer {
	return cmd.Root().ErrWriter
}

func parseID(cmd *cli.Command) (int64, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("usage: %s %s <id>", cmd.Root().Name, cmd.Name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}
