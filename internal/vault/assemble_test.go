package vault

import (
	"strings"
	"testing"

	"github.com/Spycner/epub-to-obsidian/internal/book"
)

var testMeta = book.Metadata{
	Title:    "My Book",
	Authors:  []string{"Jane Doe"},
	Language: "en",
}

func TestChapterDocument(t *testing.T) {
	ch := book.Chapter{Number: 2, Title: "The Middle"}
	prev := &navTarget{File: "01 - Start", Title: "Start"}
	next := &navTarget{File: "03 - End", Title: "End"}

	doc := ChapterDocument(ch, testMeta, "Some chapter text.", prev, next, "My Book - Index")

	for _, want := range []string{
		"title: The Middle",
		"book: My Book",
		"chapter: 2",
		"type: chapter",
		"book/my-book",
		"- chapter",
		"# The Middle",
		"Some chapter text.",
		"⬅️ [[01 - Start|Previous: Start]]",
		"📚 [[My Book - Index|Index]]",
		"[[03 - End|Next: End]] ➡️",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}

	if !strings.HasPrefix(doc, "---\n") {
		t.Error("document must start with a frontmatter block")
	}
	// Navigation comes after the final separator.
	sep := strings.LastIndex(doc, "\n---\n")
	nav := strings.Index(doc, "⬅️")
	if sep < 0 || nav < sep {
		t.Error("navigation must follow the separator")
	}
}

func TestChapterDocumentNavigationEdges(t *testing.T) {
	t.Run("first chapter omits previous", func(t *testing.T) {
		ch := book.Chapter{Number: 1, Title: "Start"}
		next := &navTarget{File: "02 - Mid", Title: "Mid"}
		doc := ChapterDocument(ch, testMeta, "text", nil, next, "My Book - Index")
		if strings.Contains(doc, "Previous:") {
			t.Error("first chapter must not link to a previous chapter")
		}
		if !strings.Contains(doc, "Next: Mid") {
			t.Error("first chapter must link to the next chapter")
		}
	})

	t.Run("last chapter omits next", func(t *testing.T) {
		ch := book.Chapter{Number: 3, Title: "End"}
		prev := &navTarget{File: "02 - Mid", Title: "Mid"}
		doc := ChapterDocument(ch, testMeta, "text", prev, nil, "My Book - Index")
		if strings.Contains(doc, "Next:") {
			t.Error("last chapter must not link to a next chapter")
		}
		if !strings.Contains(doc, "Previous: Mid") {
			t.Error("last chapter must link to the previous chapter")
		}
	})
}

func TestChapterDocumentTitleSuppression(t *testing.T) {
	ch := book.Chapter{Number: 1, Title: "The Middle"}

	t.Run("heading already present", func(t *testing.T) {
		doc := ChapterDocument(ch, testMeta, "# The Middle!\n\nText", nil, nil, "My Book - Index")
		if got := strings.Count(doc, "# The Middle"); got != 1 {
			t.Errorf("heading appears %d times, want 1:\n%s", got, doc)
		}
	})

	t.Run("heading generated when absent", func(t *testing.T) {
		doc := ChapterDocument(ch, testMeta, "Just text", nil, nil, "My Book - Index")
		if !strings.Contains(doc, "# The Middle\n") {
			t.Errorf("expected generated heading:\n%s", doc)
		}
	})
}

func TestPostProcess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "wraps decimal chapter references",
			in:   "See Chapter 12 for more",
			want: "See [[Chapter 12]] for more",
		},
		{
			name: "wraps roman numeral chapter references",
			in:   "As told in Chapter IV",
			want: "As told in [[Chapter IV]]",
		},
		{
			name: "wraps word chapter references",
			in:   "Back in Chapter One we saw",
			want: "Back in [[Chapter One]] we saw",
		},
		{
			name: "converts footnote markers",
			in:   "A fact[1] and another[23]",
			want: "A fact[^1] and another[^23]",
		},
		{
			name: "strips leftover raw tags",
			in:   "some <span class=\"x\">tagged</span> text",
			want: "some tagged text",
		},
		{
			name: "ensures blank line after heading",
			in:   "## Heading\nBody text",
			want: "## Heading\n\nBody text",
		},
		{
			name: "ensures blank line before list",
			in:   "Intro line\n- first\n- second",
			want: "Intro line\n\n- first\n- second",
		},
		{
			name: "collapses excess blank lines",
			in:   "a\n\n\n\nb",
			want: "a\n\nb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := postProcess(tt.in); got != tt.want {
				t.Errorf("postProcess(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIndexDocument(t *testing.T) {
	chapters := []book.Chapter{
		{Number: 1, Title: "The Start"},
		{Number: 2, Title: "The Middle"},
	}

	t.Run("structured TOC with matching", func(t *testing.T) {
		toc := []book.TOCEntry{
			{Title: "Part One", Level: 0},
			{Title: "THE START!", Level: 1},
			{Title: "Appendix", Level: 1},
		}
		doc := IndexDocument(testMeta, chapters, toc)

		if !strings.Contains(doc, "title: My Book - Index") {
			t.Error("missing index title in frontmatter")
		}
		if !strings.Contains(doc, "# My Book") {
			t.Error("missing book heading")
		}
		if !strings.Contains(doc, "**By Jane Doe**") {
			t.Error("missing author byline")
		}
		// Matched entry links to the chapter file; TOC title is the label.
		if !strings.Contains(doc, "  - [[01 - The Start|THE START!]]") {
			t.Errorf("matched TOC entry not linked:\n%s", doc)
		}
		// Unmatched entries render as plain list text.
		if !strings.Contains(doc, "  - Appendix\n") || strings.Contains(doc, "[[Appendix") {
			t.Errorf("unmatched TOC entry should be plain:\n%s", doc)
		}
		// Top-level entry without indentation.
		if !strings.Contains(doc, "\n- Part One\n") {
			t.Errorf("top-level TOC entry wrong:\n%s", doc)
		}
		if !strings.Contains(doc, "[[My Book - Info|Book Information]]") {
			t.Error("missing info document link")
		}
	})

	t.Run("flat chapter list without TOC", func(t *testing.T) {
		doc := IndexDocument(testMeta, chapters, nil)
		if !strings.Contains(doc, "- [[01 - The Start|The Start]]") {
			t.Errorf("missing first chapter link:\n%s", doc)
		}
		if !strings.Contains(doc, "- [[02 - The Middle|The Middle]]") {
			t.Errorf("missing second chapter link:\n%s", doc)
		}
	})
}

func TestInfoDocument(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		meta := book.Metadata{
			Title:       "My Book",
			Authors:     []string{"Jane Doe", "John Roe"},
			Publisher:   "Test House",
			Published:   "2001-02-03",
			ISBN:        "9780000000001",
			Language:    "en",
			Description: "A book about testing.",
			Subjects:    []string{"Testing", "Go"},
		}
		doc := InfoDocument(meta)
		for _, want := range []string{
			"title: My Book - Info",
			"type: info",
			"- **Authors:** Jane Doe, John Roe",
			"- **Publisher:** Test House",
			"- **Publication Date:** 2001-02-03",
			"- **ISBN:** 9780000000001",
			"- **Language:** en",
			"- **Subjects:** Testing, Go",
			"## 📝 Description",
			"A book about testing.",
			"[[My Book - Index|Back to Index]]",
		} {
			if !strings.Contains(doc, want) {
				t.Errorf("info document missing %q", want)
			}
		}
	})

	t.Run("optional fields omitted", func(t *testing.T) {
		doc := InfoDocument(testMeta)
		for _, absent := range []string{"Publisher", "Publication Date", "ISBN:", "Subjects", "Description"} {
			if strings.Contains(doc, absent) {
				t.Errorf("info document should omit %q when empty", absent)
			}
		}
		if !strings.Contains(doc, "- **Authors:** Jane Doe") {
			t.Error("authors must always be present")
		}
	})
}
