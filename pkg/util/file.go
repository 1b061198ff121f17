// SPDX-FileCopyrightText: 2024 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package util

import (
	"errors"
	"os"
	"strings"
)

func Exists(path string) error {
	_, err := os.Stat(path)
	return err
}

// RemoveIfExists deletes path, treating a missing file as success.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SanitizeName turns an image name such as "library/ubuntu" into a string
// usable as a file or instance name.
func SanitizeName(s string) string {
	return strings.ReplaceAll(s, "/", "-")
}
