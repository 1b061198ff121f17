// SPDX-FileCopyrightText: 2024-2025 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package types

import (
	"time"

	"github.com/oomol-lab/wsl-get/pkg/logger"
)

// BasicOpt holds the global flags shared by every subcommand.
type BasicOpt struct {
	Runtime    RuntimeName
	CacheDir   string
	WSLVersion int
	Timeout    time.Duration
	Verbose    bool
	Logger     *logger.Context
}

type InstallOpt struct {
	Distribution string
	InstanceName string
	User         string
	Platform     string
	Keep         bool
	KeepImage    bool

	BasicOpt
}

type DownloadOpt struct {
	Distribution string
	OutputPath   string
	Platform     string
	KeepImage    bool

	BasicOpt
}

type UninstallOpt struct {
	InstanceName string
	Yes          bool

	BasicOpt
}

type SetDefaultUserOpt struct {
	InstanceName string
	User         string

	BasicOpt
}
