// SPDX-FileCopyrightText: 2024 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"golang.org/x/sys/windows"
)

// 19044 == 21H2. Earlier builds advertise WSL2 but the current WSL package
// misbehaves on them.
const minBuildNumber uint32 = 19044

func windowsBuild() (build uint32, ok bool) {
	v := windows.RtlGetVersion()
	return v.BuildNumber, v.BuildNumber >= minBuildNumber
}
