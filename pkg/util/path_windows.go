// SPDX-FileCopyrightText: 2024 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package util

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"

	"github.com/oomol-lab/wsl-get/pkg/types"
)

// LocalAppData resolves %LOCALAPPDATA%, asking the shell when it is unset.
func LocalAppData() (string, bool) {
	if p := os.Getenv("LOCALAPPDATA"); p != "" {
		return p, true
	}

	return knownFolder(windows.FOLDERID_LocalAppData)
}

func System32Root() (string, bool) {
	if p, err := windows.GetSystemDirectory(); err == nil {
		return p, true
	}

	if p := os.Getenv("SystemRoot"); p != "" {
		return filepath.Join(p, "System32"), true
	}

	return "", false
}

// ProgramFiles prefers the 64-bit folder, which is where the WSL package
// installs even for a 32-bit caller.
func ProgramFiles() (string, bool) {
	for _, env := range []string{"ProgramW6432", "ProgramFiles"} {
		if p := os.Getenv(env); p != "" {
			return p, true
		}
	}

	return knownFolder(windows.FOLDERID_ProgramFiles)
}

func CachePath() (string, bool) {
	p, ok := LocalAppData()
	if !ok {
		return "", false
	}

	return filepath.Join(p, types.AppName, "Cache"), true
}

func knownFolder(id *windows.KNOWNFOLDERID) (string, bool) {
	p, err := windows.KnownFolderPath(id, windows.KF_FLAG_DEFAULT)
	if err != nil || p == "" {
		return "", false
	}
	return p, true
}
