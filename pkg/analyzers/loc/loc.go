// Package loc counts source lines by kind: code, comment, and blank.
package loc

import (
	"strings"

	"github.com/solstat/solstat/pkg/metrics"
)

// Count classifies every line of the given source. A line inside a block
// comment counts as a comment even when the block opened mid-line on an
// earlier one; a line that mixes code with a comment counts as code.
// Block comments nest, as they do in Rust.
func Count(content []byte) metrics.LineProfile {
	var profile metrics.LineProfile

	blockDepth := 0

	// A trailing newline terminates the last line; it does not open a
	// blank one.
	text := strings.TrimSuffix(string(content), "\n")

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && blockDepth == 0 {
			profile.Blank++

			continue
		}

		if scanLine(trimmed, &blockDepth) {
			profile.Code++
		} else {
			profile.Comment++
		}
	}

	return profile
}

// scanLine consumes one line, updating the open block-comment depth, and
// reports whether any code appears outside comments on it.
func scanLine(line string, blockDepth *int) bool {
	hasCode := false

	for i := 0; i < len(line); {
		rest := line[i:]

		switch {
		case *blockDepth > 0:
			openIdx := strings.Index(rest, "/*")
			closeIdx := strings.Index(rest, "*/")

			switch {
			case closeIdx >= 0 && (openIdx < 0 || closeIdx < openIdx):
				*blockDepth--
				i += closeIdx + 2
			case openIdx >= 0:
				*blockDepth++
				i += openIdx + 2
			default:
				return hasCode
			}
		case strings.HasPrefix(rest, "//"):
			return hasCode
		case strings.HasPrefix(rest, "/*"):
			*blockDepth++
			i += 2
		default:
			if line[i] != ' ' && line[i] != '\t' {
				hasCode = true
			}

			i++
		}
	}

	return hasCode
}
