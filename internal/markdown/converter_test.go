package markdown

import (
	"strings"
	"testing"
)

func TestConvertPrimaryPath(t *testing.T) {
	c := testConverter()
	got := c.Convert("<h1>Title</h1><p>Hello <strong>world</strong></p>")
	if !strings.Contains(got, "Hello") {
		t.Errorf("missing paragraph text: %q", got)
	}
	if !strings.Contains(got, "**world**") {
		t.Errorf("missing bold emphasis: %q", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("output contains raw tags: %q", got)
	}
}

func TestConvertNeverFails(t *testing.T) {
	c := testConverter()

	tests := []struct {
		name string
		html string
	}{
		{"empty input", ""},
		{"whitespace only", "   \n\t  "},
		{"broken markup", "<p><strong>unclosed"},
		{"tag soup", "<<<>>><p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic and must return some string, possibly empty.
			_ = c.Convert(tt.html)
		})
	}
}

func TestConvertReusableAcrossCalls(t *testing.T) {
	c := testConverter()
	first := c.Convert("<p>one</p>")
	second := c.Convert("<p>one</p>")
	if first != second {
		t.Errorf("conversion not deterministic: %q vs %q", first, second)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses excess blank lines",
			in:   "a\n\n\n\n\nb",
			want: "a\n\nb",
		},
		{
			name: "collapses interior space runs",
			in:   "a    b\tc",
			want: "a b c",
		},
		{
			name: "trims surrounding whitespace",
			in:   "\n\n  text  \n\n",
			want: "text",
		},
		{
			name: "keeps single blank lines",
			in:   "a\n\nb",
			want: "a\n\nb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize(tt.in); got != tt.want {
				t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
