// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package wsl

import "context"

var configureDefaultUID func(ctx context.Context, instance string, uid uint32) error
