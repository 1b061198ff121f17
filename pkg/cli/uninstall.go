// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/oomol-lab/wsl-get/pkg/types"
)

type UninstallContext struct {
	types.UninstallOpt

	app *App
}

func UninstallCmd(app *App, p *types.UninstallOpt) *UninstallContext {
	return &UninstallContext{
		UninstallOpt: *p,
		app:          app,
	}
}

// Start unregisters the instance and removes its now empty storage folder.
// Cached tarballs are not touched.
func (c *UninstallContext) Start(ctx context.Context) error {
	log := c.Logger
	ctrl := c.app.controller(&c.BasicOpt)

	registered, err := ctrl.IsRegistered(ctx, c.InstanceName)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrUnregisterFailed, err)
	}
	if !registered {
		return fmt.Errorf("%w: distribution %s is not installed", types.ErrUnregisterFailed, c.InstanceName)
	}

	if !c.Yes && !c.confirm(fmt.Sprintf("Do you really want to uninstall %s?", c.InstanceName)) {
		c.app.printf("Aborted")
		return nil
	}

	c.app.printf("Uninstalling %s", c.InstanceName)
	if err := ctrl.Unregister(ctx, c.InstanceName); err != nil {
		return err
	}

	if dir, err := cacheDir(&c.BasicOpt); err != nil {
		log.Warnf("Failed to open cache: %v", err)
	} else if err := dir.RemoveInstallDir(c.InstanceName); err != nil {
		log.Warnf("Failed to remove install folder: %v", err)
	}

	c.app.printf("Complete!")
	return nil
}

func (c *UninstallContext) confirm(prompt string) bool {
	_, _ = fmt.Fprintf(c.app.Stdout, "%s [y/N] ", prompt)

	line, err := bufio.NewReader(c.app.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func uninstallCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:         "uninstall",
		Usage:        "Unregister a distribution and delete its disk",
		ArgsUsage:    "<instance-name>",
		OnUsageError: onUsageError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagYes,
				Aliases: []string{"y"},
				Usage:   "do not ask for confirmation",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := validateArgs(cmd, 1, 1); err != nil {
				return err
			}

			basic, err := app.setupBasic(cmd)
			if err != nil {
				return err
			}
			defer basic.Logger.Close()

			c := UninstallCmd(app, &types.UninstallOpt{
				InstanceName: cmd.Args().First(),
				Yes:          cmd.Bool(flagYes),
				BasicOpt:     *basic,
			})

			ctx, cancel := withTimeout(ctx, basic)
			defer cancel()
			return logFailure(basic, c.Start(ctx))
		},
	}
}
