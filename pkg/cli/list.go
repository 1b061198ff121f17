// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func listCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:         "list",
		Usage:        "List installed distributions",
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := validateArgs(cmd, 0, 0); err != nil {
				return err
			}

			basic, err := app.setupBasic(cmd)
			if err != nil {
				return err
			}
			defer basic.Logger.Close()

			ctx, cancel := withTimeout(ctx, basic)
			defer cancel()

			distros, err := app.controller(basic).List(ctx)
			if err != nil {
				return logFailure(basic, err)
			}

			for _, d := range distros {
				app.printf("%s", d)
			}
			return nil
		},
	}
}
