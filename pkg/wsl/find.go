// SPDX-FileCopyrightText: 2024 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"path/filepath"
	"sync"

	"github.com/oomol-lab/wsl-get/pkg/util"
)

const fallbackExe = "wsl.exe"

var (
	onceFind sync.Once
	wslPath  string
)

// Find locates wsl.exe once per process. When no known location holds it,
// the bare name is returned and resolved through PATH at exec time.
func Find() string {
	onceFind.Do(func() {
		wslPath = firstExisting(wslCandidates())
	})

	return wslPath
}

// wslCandidates orders the Store/MSI package before the app execution alias
// and the inbox binary, which only forwards to the package.
func wslCandidates() []string {
	var list []string

	if p, ok := util.ProgramFiles(); ok {
		list = append(list, filepath.Join(p, "WSL", "wsl.exe"))
	}

	if p, ok := util.LocalAppData(); ok {
		list = append(list, filepath.Join(p, "Microsoft", "WindowsApps", "wsl.exe"))
	}

	if p, ok := util.System32Root(); ok {
		list = append(list, filepath.Join(p, "wsl.exe"))
	}

	return list
}

func firstExisting(list []string) string {
	for _, p := range list {
		if util.Exists(p) == nil {
			return p
		}
	}
	return fallbackExe
}
