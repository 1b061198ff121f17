// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/oomol-lab/wsl-get/pkg/types"
)

type SetDefaultUserContext struct {
	types.SetDefaultUserOpt

	app *App
}

func SetDefaultUserCmd(app *App, p *types.SetDefaultUserOpt) *SetDefaultUserContext {
	return &SetDefaultUserContext{
		SetDefaultUserOpt: *p,
		app:               app,
	}
}

func (c *SetDefaultUserContext) Start(ctx context.Context) error {
	if err := c.app.controller(&c.BasicOpt).SetDefaultUser(ctx, c.InstanceName, c.User); err != nil {
		return err
	}

	c.app.printf("Default user of %s is now %s", c.InstanceName, c.User)
	return nil
}

func setDefaultUserCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:         "set-default-user",
		Usage:        "Set the login user of a distribution",
		ArgsUsage:    "<instance-name> <username>",
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := validateArgs(cmd, 2, 2); err != nil {
				return err
			}

			basic, err := app.setupBasic(cmd)
			if err != nil {
				return err
			}
			defer basic.Logger.Close()

			c := SetDefaultUserCmd(app, &types.SetDefaultUserOpt{
				InstanceName: cmd.Args().Get(0),
				User:         cmd.Args().Get(1),
				BasicOpt:     *basic,
			})

			ctx, cancel := withTimeout(ctx, basic)
			defer cancel()
			return logFailure(basic, c.Start(ctx))
		},
	}
}
