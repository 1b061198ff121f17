// SPDX-FileCopyrightText: 2024 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package types

const (
	AppName = "wsl-get"

	// DefaultTag is used when a distribution reference carries no tag.
	DefaultTag = "latest"

	DefaultWSLVersion = 2
)

type RuntimeName = string

const (
	RuntimeDocker RuntimeName = "docker"
	RuntimePodman RuntimeName = "podman"
)
