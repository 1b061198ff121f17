// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/oomol-lab/wsl-get/pkg/types"
)

// LowSpace is the free space under which an exported rootfs is unlikely to fit.
const LowSpace uint64 = 4 << 30

// FreeSpace returns the bytes available on the volume holding path.
func FreeSpace(path string) (uint64, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get disk usage of %s: %v", types.ErrIOFailed, path, err)
	}
	return u.Free, nil
}
