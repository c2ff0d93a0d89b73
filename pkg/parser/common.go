package parser

import (
	"strings"
)

// CleanDescription strips wrapping quotes and collapses internal whitespace.
func CleanDescription(input string) string {
	input = strings.Trim(input, `"'`)
	input = strings.ReplaceAll(input, `"`, "")

	return strings.Join(strings.Fields(input), " ")
}
