package book

import "github.com/simp-lee/epub"

// flattenTOC converts the archive's nested TOC tree into an ordered flat
// sequence via pre-order traversal: each node is visited before its children.
func flattenTOC(items []epub.TOCItem) []TOCEntry {
	var out []TOCEntry
	var walk func(items []epub.TOCItem, level int)
	walk = func(items []epub.TOCItem, level int) {
		for _, item := range items {
			out = append(out, TOCEntry{
				Title: item.Title,
				Level: level,
				Href:  item.Href,
			})
			if len(item.Children) > 0 {
				walk(item.Children, level+1)
			}
		}
	}
	walk(items, 0)
	return out
}
