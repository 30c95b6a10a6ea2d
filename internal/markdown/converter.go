// Package markdown converts chapter HTML into Obsidian-flavored markdown.
//
// The primary path delegates to the html-to-markdown engine; when it fails
// or produces blank output, a deterministic structural fallback translates
// the parsed tree tag by tag. Convert never returns an error.
package markdown

import (
	"log/slog"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Converter turns HTML content into markdown text. Instances hold no
// per-call state and may be reused across chapters and books.
type Converter struct {
	log *slog.Logger
	md  *converter.Converter
}

// New creates a Converter. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		log: logger,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert translates HTML to markdown. On any primary-path failure or blank
// result it degrades to the structural fallback and logs the degradation;
// the worst possible outcome is an empty string, never an error.
func (c *Converter) Convert(htmlContent string) string {
	out, err := c.md.ConvertString(htmlContent)
	if err != nil {
		c.log.Warn("markdown conversion failed, using fallback converter", "error", err)
		out = c.fallback(htmlContent)
	} else if strings.TrimSpace(out) == "" {
		c.log.Debug("markdown conversion returned empty content, using fallback converter")
		out = c.fallback(htmlContent)
	}
	return normalize(out)
}
