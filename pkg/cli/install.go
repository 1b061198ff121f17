// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/oomol-lab/wsl-get/pkg/distro"
	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/wsl"
)

type InstallContext struct {
	types.InstallOpt

	app *App
	ref distro.Reference
}

func InstallCmd(app *App, p *types.InstallOpt) (*InstallContext, error) {
	ref, err := distro.Parse(p.Distribution)
	if err != nil {
		return nil, err
	}

	if p.User != "" {
		if err := wsl.ValidateUserName(p.User); err != nil {
			return nil, fmt.Errorf("%w: --%s: %w", types.ErrUsage, flagUser, err)
		}
	}

	c := &InstallContext{
		InstallOpt: *p,
		app:        app,
		ref:        ref,
	}
	if c.InstanceName == "" {
		c.InstanceName = ref.InstanceName()
	}
	return c, nil
}

// Start fetches the rootfs into the cache and imports it. The tarball is
// removed only after a successful import, so a failed import can be retried
// from the same file with `wsl.exe --import`.
func (c *InstallContext) Start(ctx context.Context) error {
	log := c.Logger
	ctrl := c.app.controller(&c.BasicOpt)

	registered, err := ctrl.IsRegistered(ctx, c.InstanceName)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrImportFailed, err)
	}
	if registered {
		return fmt.Errorf("%w: distribution %q is already registered", types.ErrImportFailed, c.InstanceName)
	}

	fetcher, err := c.app.fetcher(&c.BasicOpt, c.Platform, c.KeepImage)
	if err != nil {
		return err
	}

	dir, err := cacheDir(&c.BasicOpt)
	if err != nil {
		return err
	}

	warnLowSpace(log, dir.Root())

	c.app.printf("Installing %s as %s", c.ref, c.InstanceName)
	c.app.printf("Downloading rootfs image...")

	tarball := dir.Path(c.ref)
	if err := fetcher.Fetch(ctx, c.ref, tarball); err != nil {
		return err
	}

	installDir, err := dir.InstallDir(c.InstanceName)
	if err != nil {
		return err
	}

	c.app.printf("Registering distribution...")

	if err := ctrl.Import(ctx, tarball, c.InstanceName, installDir); err != nil {
		if rerr := dir.RemoveInstallDir(c.InstanceName); rerr != nil {
			log.Warnf("Failed to clean up install folder: %v", rerr)
		}
		log.Infof("Keeping %s after failed import", tarball)
		return err
	}

	if c.Keep {
		c.app.printf("Kept rootfs at %s", tarball)
	} else if err := dir.Remove(c.ref); err != nil {
		log.Warnf("Failed to remove tarball: %v", err)
	}

	if c.User != "" {
		c.app.printf("Creating user %s...", c.User)
		if err := ctrl.CreateUser(ctx, c.InstanceName, c.User); err != nil {
			return err
		}
		if err := ctrl.SetDefaultUser(ctx, c.InstanceName, c.User); err != nil {
			return err
		}
	}

	c.app.printf("Complete!")
	return nil
}

func installCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:         "install",
		Usage:        "Install a distribution from a container image",
		ArgsUsage:    "<distribution>[:<tag>] [<instance-name>]",
		OnUsageError: onUsageError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagKeep,
				Usage: "keep the rootfs tarball in the cache after import",
			},
			&cli.StringFlag{
				Name:  flagUser,
				Usage: "create this login user after import and make it the default",
			},
			platformFlag(),
			keepImageFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := validateArgs(cmd, 1, 2); err != nil {
				return err
			}

			c, err := InstallCmd(app, &types.InstallOpt{
				Distribution: cmd.Args().Get(0),
				InstanceName: cmd.Args().Get(1),
				User:         cmd.String(flagUser),
				Platform:     cmd.String(flagPlatform),
				Keep:         cmd.Bool(flagKeep),
				KeepImage:    cmd.Bool(flagKeepImage),
			})
			if err != nil {
				return err
			}

			basic, err := app.setupBasic(cmd)
			if err != nil {
				return err
			}
			defer basic.Logger.Close()
			c.BasicOpt = *basic

			ctx, cancel := withTimeout(ctx, basic)
			defer cancel()
			return logFailure(basic, c.Start(ctx))
		},
	}
}
