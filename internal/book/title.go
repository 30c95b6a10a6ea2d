package book

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	leadingDigits  = regexp.MustCompile(`^\s*[0-9]+\s*`)
	trailingDigits = regexp.MustCompile(`\s*[0-9]+\s*$`)
)

// extractTitle picks a chapter title from the parsed document.
// Precedence: first h1/h2/h3 with text, document <title>, cleaned-up file
// name, then a generic "Chapter N" using the candidate ordinal.
func extractTitle(doc *html.Node, fileName string, ordinal int) string {
	for _, a := range []atom.Atom{atom.H1, atom.H2, atom.H3} {
		if h := findElement(doc, a); h != nil {
			if text := textContent(h); text != "" {
				return text
			}
		}
	}

	if t := findElement(doc, atom.Title); t != nil {
		if text := textContent(t); text != "" {
			return text
		}
	}

	if title := titleFromFileName(fileName); title != "" {
		return title
	}

	return fmt.Sprintf("Chapter %d", ordinal)
}

// titleFromFileName derives a human-readable title from a content file name:
// extension stripped, separators replaced by spaces, surrounding digit runs
// removed, then title-cased. Returns "" when the stem is empty or purely
// numeric, or nothing readable remains.
func titleFromFileName(fileName string) string {
	base := path.Base(fileName)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" || isNumeric(stem) {
		return ""
	}

	title := strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	title = trailingDigits.ReplaceAllString(title, "")
	title = leadingDigits.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return cases.Title(language.English).String(title)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
