package book

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/simp-lee/epub"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Read opens the archive at epubPath and parses it into a Book.
// Archive-level failures are returned as errors; per-chapter failures are
// logged and the chapter is dropped, so a single bad document never aborts
// the whole read.
func Read(epubPath string, logger *slog.Logger) (*Book, error) {
	log := logger
	if log == nil {
		log = slog.Default()
	}

	bk, err := epub.Open(epubPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", epubPath, err)
	}
	defer bk.Close()

	for _, w := range bk.Warnings() {
		log.Debug("archive warning", "warning", w)
	}

	meta := extractMetadata(bk.Metadata())

	var (
		chapters []Chapter
		refs     []string
		seen     = make(map[string]bool)
	)
	for _, item := range bk.Chapters() {
		ch, itemRefs, err := processItem(item, len(chapters)+1)
		if err != nil {
			log.Warn("skipping unreadable chapter", "href", item.Href, "error", err)
			continue
		}
		for _, ref := range itemRefs {
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
		if ch == nil {
			log.Debug("dropping empty chapter", "href", item.Href)
			continue
		}
		chapters = append(chapters, *ch)
	}
	log.Debug("parsed archive", "title", meta.Title, "chapters", len(chapters))

	images := loadImages(bk, refs, log)

	return &Book{
		Metadata: meta,
		Chapters: chapters,
		TOC:      flattenTOC(bk.TOC()),
		Images:   images,
		Cover:    findCover(bk, images),
	}, nil
}

// extractMetadata maps archive metadata onto the Book model, filling in
// placeholders for missing required fields.
func extractMetadata(md epub.Metadata) Metadata {
	m := Metadata{
		Title:       "Unknown Title",
		Authors:     []string{"Unknown Author"},
		Language:    "en",
		Publisher:   md.Publisher,
		Published:   md.Date,
		Description: md.Description,
		Subjects:    md.Subjects,
	}

	if len(md.Titles) > 0 && strings.TrimSpace(md.Titles[0]) != "" {
		m.Title = strings.TrimSpace(md.Titles[0])
	}

	var authors []string
	for _, a := range md.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) > 0 {
		m.Authors = authors
	}

	for _, lang := range md.Language {
		if l := strings.TrimSpace(lang); l != "" {
			m.Language = l
			break
		}
	}

	for _, id := range md.Identifiers {
		if strings.Contains(strings.ToLower(id.Scheme), "isbn") ||
			strings.Contains(strings.ToLower(id.Value), "isbn") {
			m.ISBN = id.Value
			break
		}
	}

	return m
}

// processItem parses one spine document and produces a Chapter plus the
// image references it contains. Returns a nil Chapter when the document has
// no text after cleaning; such items do not consume an ordinal.
func processItem(item epub.Chapter, ordinal int) (*Chapter, []string, error) {
	raw, err := item.RawContent()
	if err != nil {
		return nil, nil, fmt.Errorf("read content: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, nil, fmt.Errorf("parse html: %w", err)
	}

	title := extractTitle(doc, item.Href, ordinal)

	// Collect image references before cleaning so that images inside
	// otherwise-empty paragraphs are still extracted.
	refs := collectImageRefs(doc, item.Href)

	cleanTree(doc)
	rewriteImageRefs(doc, item.Href)

	content := doc
	if body := findElement(doc, atom.Body); body != nil {
		content = body
	}

	text := textContent(content)
	if strings.TrimSpace(text) == "" {
		return nil, refs, nil
	}

	rendered, err := renderHTML(content)
	if err != nil {
		return nil, refs, fmt.Errorf("render html: %w", err)
	}

	return &Chapter{
		Number:   ordinal,
		Title:    title,
		HTML:     contentPolicy.Sanitize(rendered),
		Text:     text,
		ItemID:   item.ID,
		FileName: item.Href,
	}, refs, nil
}

// loadImages reads every referenced image from the archive. Unreadable
// references are logged and skipped.
func loadImages(bk *epub.Book, refs []string, log *slog.Logger) []Image {
	var images []Image
	for _, ref := range refs {
		data, err := bk.ReadFile(ref)
		if err != nil {
			log.Warn("skipping unreadable image", "path", ref, "error", err)
			continue
		}
		images = append(images, Image{Name: path.Base(ref), Data: data})
	}
	return images
}

// findCover resolves the cover image: the archive's declared cover when
// present, else the first extracted image whose name contains "cover".
func findCover(bk *epub.Book, images []Image) *Image {
	if cv, err := bk.Cover(); err == nil && len(cv.Data) > 0 {
		return &Image{Name: path.Base(cv.Path), Data: cv.Data}
	}
	for i := range images {
		if strings.Contains(strings.ToLower(images[i].Name), "cover") {
			return &images[i]
		}
	}
	return nil
}
