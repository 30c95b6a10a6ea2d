// Package book reads an ePub archive into an in-memory model: metadata,
// filtered chapters in reading order, a flattened table of contents, and
// image assets.
package book

// Metadata holds book-level metadata extracted from the archive.
// It is constructed once per archive and read-only thereafter.
type Metadata struct {
	Title       string   // primary title, never empty
	Authors     []string // author display names, never empty
	Publisher   string
	Published   string // publication date as raw string
	ISBN        string
	Language    string // BCP 47 tag, defaults to "en"
	Description string
	Subjects    []string
}

// Chapter is one readable document from the archive spine.
// Number is a contiguous 1-based ordinal over the filtered sequence:
// spine items whose text is empty after cleaning never consume one.
type Chapter struct {
	Number   int
	Title    string
	HTML     string // cleaned, sanitized body HTML
	Text     string // plain-text rendering for preview and search
	ItemID   string // manifest item ID
	FileName string // content file path within the archive
}

// TOCEntry is one entry of the flattened table of contents.
type TOCEntry struct {
	Title string
	Level int // nesting depth, 0 = top
	Href  string
}

// Image is a binary image asset referenced by the book content.
type Image struct {
	Name string // base file name
	Data []byte
}

// Book is the fully parsed archive.
type Book struct {
	Metadata Metadata
	Chapters []Chapter
	TOC      []TOCEntry
	Images   []Image
	Cover    *Image // nil when no cover was found
}
