// SPDX-FileCopyrightText: 2024 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/oomol-lab/wsl-get/pkg/types"
)

const (
	flagRuntime    = "runtime"
	flagCacheDir   = "cache-dir"
	flagWSLVersion = "wsl-version"
	flagTimeout    = "timeout"
	flagVerbose    = "verbose"

	flagKeep      = "keep"
	flagKeepImage = "keep-image"
	flagPlatform  = "platform"
	flagUser      = "user"
	flagYes       = "yes"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagRuntime,
			Usage:   "container runtime executable (docker, podman, ...); default: first found on PATH",
			Sources: cli.EnvVars("WSL_GET_RUNTIME"),
		},
		&cli.StringFlag{
			Name:    flagCacheDir,
			Usage:   "directory for rootfs tarballs, instance storage and logs",
			Sources: cli.EnvVars("WSL_GET_CACHE_DIR"),
		},
		&cli.StringFlag{
			Name:    flagWSLVersion,
			Usage:   "WSL version used when importing (1 or 2)",
			Value:   strconv.Itoa(types.DefaultWSLVersion),
			Sources: cli.EnvVars("WSL_GET_WSL_VERSION"),
		},
		&cli.DurationFlag{
			Name:    flagTimeout,
			Usage:   "abort the command after this long, 0 waits forever",
			Sources: cli.EnvVars("WSL_GET_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:    flagVerbose,
			Usage:   "mirror the log to stderr",
			Sources: cli.EnvVars("WSL_GET_VERBOSE"),
		},
	}
}

func platformFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagPlatform,
		Usage: "image platform passed to the runtime, e.g. linux/amd64",
	}
}

func keepImageFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  flagKeepImage,
		Usage: "keep an image pulled by this command in the runtime's store",
	}
}

func parseWSLVersion(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || (v != 1 && v != 2) {
		return 0, fmt.Errorf("%w: --%s must be 1 or 2, got %q", types.ErrUsage, flagWSLVersion, s)
	}
	return v, nil
}

// validateArgs checks the positional argument count before anything runs.
func validateArgs(cmd *cli.Command, min, max int) error {
	n := cmd.NArg()
	switch {
	case n < min:
		return usageError(cmd, "%s: expected at least %d argument(s), got %d", cmd.Name, min, n)
	case n > max:
		return usageError(cmd, "%s: expected at most %d argument(s), got %d", cmd.Name, max, n)
	}
	return nil
}
