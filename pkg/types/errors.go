// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package types

import "errors"

var (
	ErrInvalidReference     = errors.New("invalid distribution reference")
	ErrDependencyMissing    = errors.New("required external tool not found")
	ErrFetchFailed          = errors.New("failed to fetch rootfs")
	ErrImportFailed         = errors.New("failed to import distribution")
	ErrUnregisterFailed     = errors.New("failed to unregister distribution")
	ErrSetDefaultUserFailed = errors.New("failed to set default user")
	ErrIOFailed             = errors.New("filesystem operation failed")

	// ErrUsage marks errors caused by the command line itself.
	ErrUsage = errors.New("invalid usage")
)
