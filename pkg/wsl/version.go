// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-version"
)

var versionRe = regexp.MustCompile(`\d+\.\d+\.\d+(\.\d+)?`)

// manageMinVersion is the first WSL release with `--manage --set-default-user`.
var manageMinVersion = version.Must(version.NewVersion("2.4.4"))

// Version parses the first line of `wsl.exe --version`. The label is
// localized, so only the number is matched. Inbox WSL without --version fails.
func (c *Controller) Version(ctx context.Context) (*version.Version, error) {
	out, err := c.Exec().Run(ctx, "--version")
	if err != nil {
		return nil, fmt.Errorf("could not get wsl version: %w", err)
	}

	return parseVersion(out)
}

func parseVersion(out string) (*version.Version, error) {
	m := versionRe.FindString(out)
	if m == "" {
		return nil, fmt.Errorf("no version found in wsl output %q", out)
	}

	return version.NewVersion(m)
}
