// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package wsl

const minBuildNumber uint32 = 0

func windowsBuild() (build uint32, ok bool) {
	return 0, true
}
