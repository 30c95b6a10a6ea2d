package vault

import (
	"regexp"
	"strings"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRuns       = regexp.MustCompile(`\s+`)
	tagStripChars        = regexp.MustCompile(`[^\w\s-]`)
)

const maxFilenameLen = 200

// SanitizeFilename makes a title safe for use as a file or directory name:
// reserved and control characters stripped, whitespace runs collapsed,
// leading/trailing dots and spaces removed, length capped. Never returns
// an empty string.
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = strings.Trim(name, ". ")
	if runes := []rune(name); len(runes) > maxFilenameLen {
		name = strings.Trim(string(runes[:maxFilenameLen]), ". ")
	}
	if name == "" {
		return "Untitled"
	}
	return name
}

// sanitizeTag converts a title into a vault tag segment: punctuation
// removed, whitespace replaced by hyphens, lowercased.
func sanitizeTag(text string) string {
	text = tagStripChars.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(strings.TrimSpace(text), "-")
	return strings.ToLower(text)
}

// normalizeTitle reduces a title for matching: lowercased, punctuation
// stripped, whitespace collapsed.
func normalizeTitle(title string) string {
	title = tagStripChars.ReplaceAllString(strings.ToLower(title), "")
	return strings.Join(strings.Fields(title), " ")
}
