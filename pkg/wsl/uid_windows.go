// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"context"

	"github.com/ubuntu/gowsl"
)

// configureDefaultUID goes through WslConfigureDistribution, which takes
// effect on the next launch without touching files inside the distro.
var configureDefaultUID = func(ctx context.Context, instance string, uid uint32) error {
	d := gowsl.NewDistro(ctx, instance)
	return d.DefaultUID(uid)
}
