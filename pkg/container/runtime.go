// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package container

import (
	"fmt"

	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/util"
)

var knownRuntimes = []types.RuntimeName{types.RuntimeDocker, types.RuntimePodman}

var lookPath = util.LookPath

// Detect returns the runtime executable to use. An empty name picks the first
// known runtime found on PATH.
func Detect(name types.RuntimeName) (string, error) {
	if name != "" {
		return lookPath(name)
	}

	for _, rt := range knownRuntimes {
		if p, err := lookPath(rt); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: none of %v found on PATH", types.ErrDependencyMissing, knownRuntimes)
}
