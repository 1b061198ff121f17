// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

// Package distro parses distribution references of the form name[:tag].
package distro

import (
	"fmt"
	"strings"

	"github.com/oomol-lab/wsl-get/pkg/types"
	"github.com/oomol-lab/wsl-get/pkg/util"
)

// Reference names a container image. The zero Tag means "not given".
type Reference struct {
	Name string
	Tag  string
}

// Parse splits raw on its first colon. Character legality is left to the registry.
func Parse(raw string) (Reference, error) {
	raw = strings.TrimSpace(raw)

	name, tag, hasTag := strings.Cut(raw, ":")
	if name == "" {
		return Reference{}, fmt.Errorf("%w: %q: missing name", types.ErrInvalidReference, raw)
	}
	if hasTag && tag == "" {
		return Reference{}, fmt.Errorf("%w: %q: empty tag", types.ErrInvalidReference, raw)
	}

	return Reference{Name: name, Tag: tag}, nil
}

func (r Reference) HasTag() bool {
	return r.Tag != ""
}

// TagOrDefault resolves an unset tag to "latest".
func (r Reference) TagOrDefault() string {
	if r.HasTag() {
		return r.Tag
	}
	return types.DefaultTag
}

// Image is the string handed to the container runtime.
func (r Reference) Image() string {
	return r.Name + ":" + r.TagOrDefault()
}

// InstanceName is the WSL instance name used when the user gives none.
func (r Reference) InstanceName() string {
	return util.SanitizeName(r.Name)
}

// FileName is the tarball name for this reference.
func (r Reference) FileName() string {
	return fmt.Sprintf("%s-%s.tar.gz", util.SanitizeName(r.Name), util.SanitizeName(r.TagOrDefault()))
}

func (r Reference) String() string {
	if !r.HasTag() {
		return r.Name
	}
	return r.Name + ":" + r.Tag
}
