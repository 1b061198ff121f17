// SPDX-FileCopyrightText: 2025 OOMOL, Inc. <https://www.oomol.com>
// SPDX-License-Identifier: MPL-2.0

package wsl

import (
	"bufio"
	"fmt"
	"strings"
)

const wslConfPath = "/etc/wsl.conf"

// setConfKey sets key in section of a wsl.conf document. An existing
// assignment is replaced in place; otherwise the key is added to the section,
// and the section is appended when it is missing.
func setConfKey(content, expectSection, expectKey, value string) string {
	var out []string

	want := fmt.Sprintf("[%s]", strings.ToLower(expectSection))
	assignment := fmt.Sprintf("%s = %s", expectKey, value)

	section := ""
	sectionSeen := false
	written := false

	// flush adds the key at the end of the target section, above trailing blanks.
	flush := func() {
		if section != want || written {
			return
		}
		i := len(out)
		for i > 0 && strings.TrimSpace(out[i-1]) == "" {
			i--
		}
		out = append(out[:i], append([]string{assignment}, out[i:]...)...)
		written = true
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.ToLower(strings.TrimSpace(raw))

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			flush()
			section = line
			if section == want {
				sectionSeen = true
			}
			out = append(out, raw)
			continue
		}

		if section == want && !strings.HasPrefix(line, "#") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 && strings.TrimSpace(parts[0]) == strings.ToLower(expectKey) {
				if !written {
					out = append(out, assignment)
					written = true
				}
				continue
			}
		}

		out = append(out, raw)
	}

	flush()

	if !sectionSeen {
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, fmt.Sprintf("[%s]", expectSection), assignment)
	}

	return strings.Join(out, "\n") + "\n"
}
