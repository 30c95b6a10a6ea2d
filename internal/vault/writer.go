package vault

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Spycner/epub-to-obsidian/internal/book"
	"github.com/Spycner/epub-to-obsidian/internal/markdown"
)

// Writer converts archives into book directories under an output root.
// A Writer is self-contained and safe to reuse across books.
type Writer struct {
	outputDir string
	log       *slog.Logger
	conv      *markdown.Converter
}

// NewWriter creates a Writer rooted at outputDir. A nil logger falls back
// to slog.Default().
func NewWriter(outputDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		outputDir: outputDir,
		log:       logger,
		conv:      markdown.New(logger),
	}
}

// WriteBook reads the archive at epubPath and writes the full book
// directory. Returns the created directory path.
func (w *Writer) WriteBook(epubPath string, includeImages bool) (string, error) {
	bk, err := book.Read(epubPath, w.log)
	if err != nil {
		return "", err
	}
	return w.Write(bk, includeImages)
}

// Write lays out a parsed book on disk: the book directory, image assets,
// index and info documents, and one document per chapter with final
// navigation links. Re-running overwrites files in place.
func (w *Writer) Write(bk *book.Book, includeImages bool) (string, error) {
	safeTitle := SanitizeFilename(bk.Metadata.Title)
	bookDir := filepath.Join(w.outputDir, safeTitle+"_obsidian")
	if err := os.MkdirAll(bookDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create book directory: %w", err)
	}

	if includeImages {
		if err := w.writeImages(bk, bookDir); err != nil {
			return "", err
		}
	}

	indexFile := safeTitle + " - Index"
	indexPath := filepath.Join(bookDir, indexFile+".md")
	if err := writeFile(indexPath, IndexDocument(bk.Metadata, bk.Chapters, bk.TOC)); err != nil {
		return "", err
	}

	infoPath := filepath.Join(bookDir, safeTitle+" - Info.md")
	if err := writeFile(infoPath, InfoDocument(bk.Metadata)); err != nil {
		return "", err
	}

	for i, ch := range bk.Chapters {
		md := w.conv.Convert(ch.HTML)

		var prev, next *navTarget
		if i > 0 {
			prev = &navTarget{File: chapterFileBase(bk.Chapters[i-1]), Title: bk.Chapters[i-1].Title}
		}
		if i < len(bk.Chapters)-1 {
			next = &navTarget{File: chapterFileBase(bk.Chapters[i+1]), Title: bk.Chapters[i+1].Title}
		}

		doc := ChapterDocument(ch, bk.Metadata, md, prev, next, indexFile)
		chapterPath := filepath.Join(bookDir, chapterFileBase(ch)+".md")
		if err := writeFile(chapterPath, doc); err != nil {
			return "", err
		}
		w.log.Debug("wrote chapter", "number", ch.Number, "title", ch.Title)
	}

	w.log.Info("wrote book", "title", bk.Metadata.Title, "chapters", len(bk.Chapters), "dir", bookDir)
	return bookDir, nil
}

// writeImages places non-cover images in an images/ subfolder and the cover
// as "cover" plus its original extension in the book directory root.
func (w *Writer) writeImages(bk *book.Book, bookDir string) error {
	if len(bk.Images) > 0 {
		imagesDir := filepath.Join(bookDir, "images")
		if err := os.MkdirAll(imagesDir, 0o755); err != nil {
			return fmt.Errorf("failed to create images directory: %w", err)
		}
		for _, img := range bk.Images {
			name := SanitizeFilename(img.Name)
			if err := os.WriteFile(filepath.Join(imagesDir, name), img.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write image %s: %w", name, err)
			}
		}
	}

	if bk.Cover != nil {
		name := "cover" + coverExt(bk.Cover.Name)
		if err := os.WriteFile(filepath.Join(bookDir, name), bk.Cover.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write cover: %w", err)
		}
	}
	return nil
}

// coverExt picks the cover file extension from the archive's cover name,
// defaulting to .jpg when the name carries none.
func coverExt(name string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		return ext
	}
	return ".jpg"
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
