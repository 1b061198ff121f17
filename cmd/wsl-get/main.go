// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oomol-lab/wsl-get/pkg/cli"
	"github.com/oomol-lab/wsl-get/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Run(ctx, cli.NewApp(), os.Args)
	stop()
	exit(code)
}

func exit(exitCode int) {
	logger.CloseAll()
	os.Exit(exitCode)
}
