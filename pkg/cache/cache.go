// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

// Package cache manages the per-user directory that stages rootfs tarballs.
//
// Layout:
//
//	<root>/rootfs/<name>-<tag>.tar.gz   fetched tarballs
//	<root>/distros/<instance>/          storage handed to wsl.exe --import
//	<root>/logs/                        log files
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oomol-lab/wsl-get/pkg/distro"
	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/util"
)

const (
	rootfsDir  = "rootfs"
	distrosDir = "distros"
	logsDir    = "logs"
)

type Dir struct {
	root string
}

// Resolve returns the absolute cache root without creating anything. An empty
// root selects the per-user cache path.
func Resolve(root string) (string, error) {
	if root == "" {
		p, ok := util.CachePath()
		if !ok {
			return "", fmt.Errorf("%w: cannot resolve the user cache directory", types.ErrIOFailed)
		}
		root = p
	}

	p, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: failed to get absolute path from %s: %v", types.ErrIOFailed, root, err)
	}

	return p, nil
}

// LogDir is where log files live under root.
func LogDir(root string) string {
	return filepath.Join(root, logsDir)
}

// New resolves root and creates the tarball directory inside it.
func New(root string) (*Dir, error) {
	p, err := Resolve(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(p, rootfsDir), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create cache folder %s: %v", types.ErrIOFailed, p, err)
	}

	return &Dir{root: p}, nil
}

func (d *Dir) Root() string {
	return d.root
}

// Path is the tarball location for ref. Repeated fetches reuse it.
func (d *Dir) Path(ref distro.Reference) string {
	return filepath.Join(d.root, rootfsDir, ref.FileName())
}

func (d *Dir) Exists(ref distro.Reference) bool {
	return util.Exists(d.Path(ref)) == nil
}

// Remove deletes the tarball for ref; a missing file is not an error.
func (d *Dir) Remove(ref distro.Reference) error {
	if err := util.RemoveIfExists(d.Path(ref)); err != nil {
		return fmt.Errorf("%w: failed to remove %s: %v", types.ErrIOFailed, d.Path(ref), err)
	}
	return nil
}

// InstallDir creates and returns the storage directory for instance.
func (d *Dir) InstallDir(instance string) (string, error) {
	p := filepath.Join(d.root, distrosDir, util.SanitizeName(instance))
	if err := os.MkdirAll(p, 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create install folder %s: %v", types.ErrIOFailed, p, err)
	}
	return p, nil
}

// RemoveInstallDir deletes the storage directory of instance. Only an empty
// directory is removed, so a disk left behind by wsl.exe is never lost.
func (d *Dir) RemoveInstallDir(instance string) error {
	p := filepath.Join(d.root, distrosDir, util.SanitizeName(instance))
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: failed to remove install folder %s: %v", types.ErrIOFailed, p, err)
	}
	return nil
}
