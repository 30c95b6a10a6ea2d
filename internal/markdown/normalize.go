package markdown

import (
	"regexp"
	"strings"
)

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	spaceRuns        = regexp.MustCompile(`[ \t]+`)
)

// normalize collapses runs of blank lines to a single blank line and runs
// of interior spaces to one space, then trims the whole result.
func normalize(s string) string {
	s = excessBlankLines.ReplaceAllString(s, "\n\n")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
