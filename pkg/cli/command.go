// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

// Package cli wires the wsl-get subcommands to the fetcher, the WSL
// controller and the cache.
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/oomol-lab/wsl-get/pkg/types"
)

// Command builds the root command. Run it with the full os.Args.
func Command(app *App) *cli.Command {
	return &cli.Command{
		Name:         types.AppName,
		Usage:        "install container images as WSL2 distributions",
		Writer:       app.Stdout,
		ErrWriter:    app.Stderr,
		Flags:        globalFlags(),
		OnUsageError: onUsageError,
		Commands: []*cli.Command{
			installCommand(app),
			uninstallCommand(app),
			listCommand(app),
			setDefaultUserCommand(app),
			downloadCommand(app),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				return usageError(cmd, "unknown command %q", cmd.Args().First())
			}
			return usageError(cmd, "missing command")
		},
		// Errors are returned to Run instead of exiting from inside urfave.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// Run executes args (including the program name) and returns the exit code.
func Run(ctx context.Context, app *App, args []string) int {
	err := Command(app).Run(ctx, args)
	if err != nil {
		_, _ = fmt.Fprintf(app.Stderr, "Error: %v\n", err)
		if app.logPath != "" {
			_, _ = fmt.Fprintf(app.Stderr, "See %s for details\n", app.logPath)
		}
	}
	return ExitCode(err)
}
