// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package util

import "syscall"

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
