package commands

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"tasklist/internal/ui"
)

func runTUI(_ context.Context, cmd *cli.Command) error {
	// Log lines would corrupt the screen; only log_file receives them.
	a, err := openApp(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	return ui.Run(a.Store, a.Config)
}
