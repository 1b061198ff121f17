// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/oomol-lab/wsl-get/pkg/distro"
	"github.com/oomol-lab/wsl-get/pkg/types"
)

type DownloadContext struct {
	types.DownloadOpt

	app *App
	ref distro.Reference
}

func DownloadCmd(app *App, p *types.DownloadOpt) (*DownloadContext, error) {
	ref, err := distro.Parse(p.Distribution)
	if err != nil {
		return nil, err
	}

	return &DownloadContext{
		DownloadOpt: *p,
		app:         app,
		ref:         ref,
	}, nil
}

// Start fetches the rootfs and leaves it on disk. Nothing talks to WSL.
func (c *DownloadContext) Start(ctx context.Context) error {
	dest, err := c.destination()
	if err != nil {
		return err
	}

	fetcher, err := c.app.fetcher(&c.BasicOpt, c.Platform, c.KeepImage)
	if err != nil {
		return err
	}

	warnLowSpace(c.Logger, filepath.Dir(dest))

	c.app.printf("Downloading %s...", c.ref)
	if err := fetcher.Fetch(ctx, c.ref, dest); err != nil {
		return err
	}

	c.app.printf("Saved rootfs to %s", dest)
	return nil
}

// destination is the output path, a file inside it when it is a directory,
// or the cache path of the reference.
func (c *DownloadContext) destination() (string, error) {
	if c.OutputPath == "" {
		dir, err := cacheDir(&c.BasicOpt)
		if err != nil {
			return "", err
		}
		return dir.Path(c.ref), nil
	}

	p, err := filepath.Abs(c.OutputPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to get absolute path from %s: %v", types.ErrIOFailed, c.OutputPath, err)
	}

	if fi, err := os.Stat(p); err == nil && fi.IsDir() {
		return filepath.Join(p, c.ref.FileName()), nil
	}
	return p, nil
}

func downloadCommand(app *App) *cli.Command {
	return &cli.Command{
		Name:         "download",
		Usage:        "Download the rootfs tarball of a distribution",
		ArgsUsage:    "<distribution>[:<tag>] [<output-path>]",
		OnUsageError: onUsageError,
		Flags: []cli.Flag{
			platformFlag(),
			keepImageFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := validateArgs(cmd, 1, 2); err != nil {
				return err
			}

			c, err := DownloadCmd(app, &types.DownloadOpt{
				Distribution: cmd.Args().Get(0),
				OutputPath:   cmd.Args().Get(1),
				Platform:     cmd.String(flagPlatform),
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
