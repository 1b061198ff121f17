// SPDX-FileCopyrightText: 2024 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/oomol-lab/wsl-get/pkg/cache"
	"github.com/oomol-lab/wsl-get/pkg/logger"
	"github.com/oomol-lab/wsl-get/pkg/types"
)

// Exit codes of the process.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, types.ErrUsage):
		return ExitUsage
	case errors.As(err, new(cli.ExitCoder)):
		// Only urfave's help and parsing paths produce these.
		return ExitUsage
	default:
		return ExitError
	}
}

func usageError(cmd *cli.Command, format string, args ...any) error {
	_ = cli.ShowSubcommandHelp(cmd)
	return fmt.Errorf("%w: %s", types.ErrUsage, fmt.Sprintf(format, args...))
}

func onUsageError(_ context.Context, cmd *cli.Command, err error, _ bool) error {
	return fmt.Errorf("%w: %v", types.ErrUsage, err)
}

// setupBasic reads the global flags and opens the log.
func (a *App) setupBasic(cmd *cli.Command) (*types.BasicOpt, error) {
	v, err := parseWSLVersion(cmd.String(flagWSLVersion))
	if err != nil {
		return nil, err
	}

	o := &types.BasicOpt{
		Runtime:    cmd.String(flagRuntime),
		CacheDir:   cmd.String(flagCacheDir),
		WSLVersion: v,
		Timeout:    cmd.Duration(flagTimeout),
		Verbose:    cmd.Bool(flagVerbose),
	}

	if err := a.setupLog(o); err != nil {
		return nil, fmt.Errorf("failed to setup log: %w", err)
	}

	o.Logger.Infof("Running %s %v", cmd.FullName(), cmd.Args().Slice())
	return o, nil
}

func (a *App) setupLog(o *types.BasicOpt) error {
	root, err := cache.Resolve(o.CacheDir)
	if err != nil {
		return err
	}

	log, err := logger.New(cache.LogDir(root), types.AppName)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrIOFailed, err)
	}

	if o.Verbose {
		log.MirrorTo(a.Stderr)
	}

	o.Logger = log
	a.logPath = log.Path()
	return nil
}

// withTimeout bounds ctx by the --timeout flag when it is set.
func withTimeout(ctx context.Context, o *types.BasicOpt) (context.Context, context.CancelFunc) {
	if o.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.Timeout)
}

// warnLowSpace logs when the volume holding path is nearly full. It never
// fails the command.
func warnLowSpace(log *logger.Context, path string) {
	free, err := cache.FreeSpace(path)
	if err != nil {
		log.Warnf("Failed to check free space: %v", err)
		return
	}
	if free < cache.LowSpace {
		log.Warnf("Only %d MiB free in %s, the rootfs may not fit", free>>20, path)
	}
}

// logFailure records err in the log file before it reaches the entry point.
func logFailure(o *types.BasicOpt, err error) error {
	if err != nil {
		o.Logger.Errorf("%v", err)
	}
	return err
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.Stdout, format+"\n", args...)
}
