// Package vault assembles converted chapters into an Obsidian-compatible
// document set and writes the output folder hierarchy.
package vault

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Spycner/epub-to-obsidian/internal/book"
)

// frontmatter is the YAML header block at the top of every vault document.
// Field order matters for readability in the rendered output.
type frontmatter struct {
	Title   string   `yaml:"title"`
	Book    string   `yaml:"book,omitempty"`
	Chapter int      `yaml:"chapter,omitempty"`
	Type    string   `yaml:"type"`
	Tags    []string `yaml:"tags"`
}

func (fm frontmatter) render() string {
	data, err := yaml.Marshal(fm)
	if err != nil {
		// Marshal of a plain struct cannot fail; keep the document valid anyway.
		return "---\n---"
	}
	return "---\n" + string(data) + "---"
}

// navTarget identifies an adjacent chapter document for navigation links.
type navTarget struct {
	File  string // target file name without extension
	Title string
}

// navigationLine renders the chapter footer navigation. Prev and next are
// nil at the start and end of the book; the index link is always present.
func navigationLine(prev, next *navTarget, indexFile string) string {
	var parts []string
	if prev != nil {
		parts = append(parts, fmt.Sprintf("⬅️ [[%s|Previous: %s]]", prev.File, prev.Title))
	}
	parts = append(parts, fmt.Sprintf("📚 [[%s|Index]]", indexFile))
	if next != nil {
		parts = append(parts, fmt.Sprintf("[[%s|Next: %s]] ➡️", next.File, next.Title))
	}
	return strings.Join(parts, " | ")
}

// chapterFileBase returns the chapter's output file name without extension:
// a 2-digit zero-padded ordinal followed by the sanitized title.
func chapterFileBase(ch book.Chapter) string {
	return fmt.Sprintf("%02d - %s", ch.Number, SanitizeFilename(ch.Title))
}

// ChapterDocument produces the final markup text for one chapter: header
// block, an optional generated title heading, the post-processed markdown,
// a separator, and the navigation line. Navigation targets carry final file
// names; adjacency is known before any chapter is rendered, so no second
// patching pass is needed.
func ChapterDocument(ch book.Chapter, meta book.Metadata, markdown string, prev, next *navTarget, indexFile string) string {
	fm := frontmatter{
		Title:   ch.Title,
		Book:    meta.Title,
		Chapter: ch.Number,
		Type:    "chapter",
		Tags:    []string{"book/" + sanitizeTag(meta.Title), "chapter"},
	}

	content := postProcess(markdown)

	var b strings.Builder
	b.WriteString(fm.render())
	b.WriteString("\n\n")
	if ch.Title != "" && !titleInContent(content, ch.Title) {
		b.WriteString("# " + ch.Title + "\n\n")
	}
	b.WriteString(content)
	b.WriteString("\n\n---\n\n")
	b.WriteString(navigationLine(prev, next, indexFile))
	b.WriteString("\n")
	return b.String()
}

var (
	chapterRefPattern   = regexp.MustCompile(`(?i)Chapter\s+([IVX\d]+|[A-Z][a-z]+)`)
	footnotePattern     = regexp.MustCompile(`\[(\d+)\]`)
	rawTagPattern       = regexp.MustCompile(`<[^>]+>`)
	headingRunOn        = regexp.MustCompile("(#{1,6}[ \t]+[^\n]+)\n([^\n])")
	listItemLinePattern = regexp.MustCompile(`^\s*(-|\d+\.)\s+`)
	excessBlankLines    = regexp.MustCompile(`\n{3,}`)
)

// postProcess adapts converted markdown for the vault: blank-line collapse,
// chapter references wrapped as [[links]], bracketed footnote markers turned
// into carat references, leftover raw tags stripped, and heading/list
// spacing fixed up.
func postProcess(content string) string {
	content = excessBlankLines.ReplaceAllString(content, "\n\n")
	content = chapterRefPattern.ReplaceAllString(content, "[[$0]]")
	content = footnotePattern.ReplaceAllString(content, "[^$1]")
	content = rawTagPattern.ReplaceAllString(content, "")
	content = headingRunOn.ReplaceAllString(content, "$1\n\n$2")
	content = ensureListSpacing(content)
	return strings.TrimSpace(content)
}

// ensureListSpacing inserts a blank line before the first item of a list
// when the preceding line is neither blank nor itself a list item.
func ensureListSpacing(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && listItemLinePattern.MatchString(line) &&
			strings.TrimSpace(lines[i-1]) != "" &&
			!listItemLinePattern.MatchString(lines[i-1]) {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// titleInContent reports whether the first few lines of content already
// contain a heading equal to the chapter title, compared case- and
// punctuation-insensitively.
func titleInContent(content, title string) bool {
	want := normalizeTitle(title)
	lines := strings.Split(content, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		heading := strings.TrimLeft(line, "#")
		if normalizeTitle(heading) == want {
			return true
		}
	}
	return false
}

// IndexDocument builds the book's index page. When a structured TOC is
// available it is rendered as a nested list with entries linked to matching
// chapters; otherwise all chapters are listed flat.
func IndexDocument(meta book.Metadata, chapters []book.Chapter, toc []book.TOCEntry) string {
	safeTitle := SanitizeFilename(meta.Title)
	fm := frontmatter{
		Title: meta.Title + " - Index",
		Type:  "index",
		Tags:  []string{"book/" + sanitizeTag(meta.Title), "index"},
	}

	var b strings.Builder
	b.WriteString(fm.render())
	b.WriteString("\n\n")
	b.WriteString("# " + meta.Title + "\n\n")
	b.WriteString("**By " + strings.Join(meta.Authors, ", ") + "**\n\n")
	b.WriteString("## 📖 Table of Contents\n\n")

	if len(toc) > 0 {
		for _, entry := range toc {
			indent := strings.Repeat("  ", entry.Level)
			if ch := matchChapter(chapters, entry.Title); ch != nil {
				b.WriteString(fmt.Sprintf("%s- [[%s|%s]]\n", indent, chapterFileBase(*ch), entry.Title))
			} else {
				b.WriteString(fmt.Sprintf("%s- %s\n", indent, entry.Title))
			}
		}
	} else {
		for _, ch := range chapters {
			b.WriteString(fmt.Sprintf("- [[%s|%s]]\n", chapterFileBase(ch), ch.Title))
		}
	}

	b.WriteString("\n---\n\n")
	b.WriteString(fmt.Sprintf("📚 [[%s - Info|Book Information]]\n", safeTitle))
	return b.String()
}

// matchChapter finds the chapter whose title matches the TOC entry title
// under normalized comparison, or nil when none does.
func matchChapter(chapters []book.Chapter, title string) *book.Chapter {
	want := normalizeTitle(title)
	if want == "" {
		return nil
	}
	for i := range chapters {
		if normalizeTitle(chapters[i].Title) == want {
			return &chapters[i]
		}
	}
	return nil
}

// InfoDocument builds the book information page from metadata alone.
func InfoDocument(meta book.Metadata) string {
	safeTitle := SanitizeFilename(meta.Title)
	fm := frontmatter{
		Title: meta.Title + " - Info",
		Type:  "info",
		Tags:  []string{"book/" + sanitizeTag(meta.Title), "metadata"},
	}

	var b strings.Builder
	b.WriteString(fm.render())
	b.WriteString("\n\n")
	b.WriteString("# " + meta.Title + " - Book Information\n\n")
	b.WriteString("## 📖 Metadata\n\n")
	b.WriteString("- **Authors:** " + strings.Join(meta.Authors, ", ") + "\n")
	if meta.Publisher != "" {
		b.WriteString("- **Publisher:** " + meta.Publisher + "\n")
	}
	if meta.Published != "" {
		b.WriteString("- **Publication Date:** " + meta.Published + "\n")
	}
	if meta.ISBN != "" {
		b.WriteString("- **ISBN:** " + meta.ISBN + "\n")
	}
	if meta.Language != "" {
		b.WriteString("- **Language:** " + meta.Language + "\n")
	}
	if len(meta.Subjects) > 0 {
		b.WriteString("- **Subjects:** " + strings.Join(meta.Subjects, ", ") + "\n")
	}
	if meta.Description != "" {
		b.WriteString("\n## 📝 Description\n\n" + meta.Description + "\n")
	}

	b.WriteString("\n---\n\n")
	b.WriteString(fmt.Sprintf("📚 [[%s - Index|Back to Index]]\n", safeTitle))
	return b.String()
}
