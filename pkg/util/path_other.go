// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package util

import (
	"os"
	"path/filepath"

	"github.com/oomol-lab/wsl-get/pkg/types"
)

// LocalAppData, System32Root and ProgramFiles have no meaning outside Windows.
// Inside a WSL instance wsl.exe is reached through interop on PATH.

func LocalAppData() (string, bool) {
	return "", false
}

func System32Root() (string, bool) {
	return "", false
}

func ProgramFiles() (string, bool) {
	return "", false
}

func CachePath() (string, bool) {
	if p, err := os.UserCacheDir(); err == nil {
		return filepath.Join(p, types.AppName), true
	}

	return "", false
}
