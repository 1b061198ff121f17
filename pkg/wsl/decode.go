// SPDX-FileCopyrightText: 2026 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// decodeOutput normalizes the text wsl.exe itself prints. Builds that ignore
// WSL_UTF8 print UTF-16LE, which always carries NUL bytes for ASCII text.
// Anything without a NUL is returned as is.
func decodeOutput(b []byte) string {
	if len(b) >= 2 && bytes.IndexByte(b, 0) >= 0 {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(b); err == nil {
			b = out
		}
	}

	s := strings.TrimPrefix(string(b), "\ufeff")
	return strings.ReplaceAll(s, "\r\n", "\n")
}
