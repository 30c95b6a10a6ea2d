package markdown

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testConverter() *Converter {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFallbackTagRules(t *testing.T) {
	c := testConverter()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraph with nested emphasis",
			html: "<p>Hello <strong>world</strong></p>",
			want: "Hello **world**",
		},
		{
			name: "heading levels",
			html: "<h1>One</h1><h3>Three</h3>",
			want: "# One\n\n### Three",
		},
		{
			name: "italic",
			html: "<p>an <em>important</em> word</p>",
			want: "an *important* word",
		},
		{
			name: "inline code",
			html: "<p>run <code>go test</code> now</p>",
			want: "run `go test` now",
		},
		{
			name: "fenced pre block",
			html: "<pre>line one\nline two</pre>",
			want: "```\nline one\nline two\n```",
		},
		{
			name: "link with href",
			html: `<p>see <a href="http://example.com">the site</a></p>`,
			want: "see [the site](http://example.com)",
		},
		{
			name: "link without href",
			html: "<p>see <a>the site</a></p>",
			want: "see the site",
		},
		{
			name: "unordered list",
			html: "<ul><li>first</li><li>second</li></ul>",
			want: "- first\n- second",
		},
		{
			name: "ordered list",
			html: "<ol><li>first</li><li>second</li></ol>",
			want: "1. first\n2. second",
		},
		{
			name: "blockquote",
			html: "<blockquote><p>quoted line</p></blockquote>",
			want: "> quoted line",
		},
		{
			name: "horizontal rule",
			html: "<p>before</p><hr/><p>after</p>",
			want: "before\n\n---\n\nafter",
		},
		{
			name: "transparent containers",
			html: `<div><section><p>inner <span>text</span></p></section></div>`,
			want: "inner text",
		},
		{
			name: "unknown tags drop to plain text",
			html: "<figure><figcaption>a caption</figcaption></figure>",
			want: "a caption",
		},
		{
			name: "nested emphasis",
			html: "<p><strong>bold and <em>italic</em></strong></p>",
			want: "**bold and *italic***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(c.fallback(tt.html))
			if got != tt.want {
				t.Errorf("fallback(%q) = %q, want %q", tt.html, got, tt.want)
			}
		})
	}
}

func TestFallbackIdempotentOnCleanInput(t *testing.T) {
	c := testConverter()
	got := normalize(c.fallback("<p>Hello <strong>world</strong></p>"))
	if got != "Hello **world**" {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("single paragraph should have no line breaks: %q", got)
	}
}

func TestFallbackEmptyInput(t *testing.T) {
	c := testConverter()
	if got := normalize(c.fallback("")); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
