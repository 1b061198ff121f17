// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"io"
	"os"

	"github.com/oomol-lab/wsl-get/pkg/cache"
	"github.com/oomol-lab/wsl-get/pkg/container"
	"github.com/oomol-lab/wsl-get/pkg/distro"
	"github.com/oomol-lab/wsl-get/pkg/logger"
	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/util"
	"github.com/oomol-lab/wsl-get/pkg/wsl"
)

// Fetcher materializes a rootfs tarball for a reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref distro.Reference, dest string) error
}

// Controller is the subset of wsl.exe operations the commands use.
type Controller interface {
	Import(ctx context.Context, tarball, instance, installDir string) error
	Unregister(ctx context.Context, instance string) error
	List(ctx context.Context) ([]string, error)
	IsRegistered(ctx context.Context, instance string) (bool, error)
	SetDefaultUser(ctx context.Context, instance, user string) error
	CreateUser(ctx context.Context, instance, user string) error
}

// FetchOpt configures the fetcher of one command.
type FetchOpt struct {
	Runtime   types.RuntimeName
	Platform  string
	KeepImage bool
	Progress  io.Writer
}

// App carries the process's streams and the factories the commands build
// their collaborators with. Tests replace the factories.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	NewFetcher    func(log *logger.Context, o FetchOpt) (Fetcher, error)
	NewController func(log *logger.Context, wslVersion int) Controller

	logPath string
}

func NewApp() *App {
	return &App{
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		NewFetcher:    defaultFetcher,
		NewController: defaultController,
	}
}

func defaultFetcher(log *logger.Context, o FetchOpt) (Fetcher, error) {
	rt, err := container.Detect(o.Runtime)
	if err != nil {
		return nil, err
	}
	log.Infof("Using container runtime %s", rt)

	f := container.New(log, util.NewExec(log), rt)
	f.Platform = o.Platform
	f.KeepImage = o.KeepImage
	f.Progress = o.Progress
	return f, nil
}

func defaultController(log *logger.Context, wslVersion int) Controller {
	c := wsl.New(log, util.NewExec(log).WithEnv("WSL_UTF8=1"))
	c.WSLVersion = wslVersion
	return c
}

func (a *App) controller(o *types.BasicOpt) Controller {
	return a.NewController(o.Logger, o.WSLVersion)
}

func (a *App) fetcher(o *types.BasicOpt, platform string, keepImage bool) (Fetcher, error) {
	return a.NewFetcher(o.Logger, FetchOpt{
		Runtime:   o.Runtime,
		Platform:  platform,
		KeepImage: keepImage,
		Progress:  a.Stderr,
	})
}

func cacheDir(o *types.BasicOpt) (*cache.Dir, error) {
	return cache.New(o.CacheDir)
}
