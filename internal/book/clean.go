package book

import (
	"net/url"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// contentPolicy strips scripts, styles, event handlers and other unsafe
// markup from chapter body HTML before conversion. The UGC policy keeps
// headings, paragraphs, lists, emphasis, links and images.
var contentPolicy = bluemonday.UGCPolicy()

// cleanTree removes script, style, meta and link elements and paragraphs
// whose text content is empty after trimming.
func cleanTree(root *html.Node) {
	var doomed []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Meta, atom.Link:
				doomed = append(doomed, n)
				return
			case atom.P:
				if textContent(n) == "" {
					doomed = append(doomed, n)
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// textContent returns the whitespace-collapsed text of a subtree,
// skipping script and style content.
func textContent(root *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(strings.Fields(b.String()), " ")
}

// findElement returns the first element with the given atom in pre-order,
// or nil if none exists.
func findElement(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// renderHTML serializes a node subtree back to an HTML string.
func renderHTML(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// collectImageRefs walks the subtree for <img> elements and returns the
// referenced files as archive paths, resolved against the directory of the
// chapter file. External and data URLs are ignored.
func collectImageRefs(root *html.Node, chapterHref string) []string {
	baseDir := path.Dir(chapterHref)
	var refs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			if src := attrValue(n, "src"); src != "" {
				if ref := resolveImageRef(baseDir, src); ref != "" {
					refs = append(refs, ref)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return refs
}

// rewriteImageRefs points every local <img src> at the vault-relative
// images/ folder so links resolve after extraction.
func rewriteImageRefs(root *html.Node, chapterHref string) {
	baseDir := path.Dir(chapterHref)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			if src := attrValue(n, "src"); src != "" {
				if ref := resolveImageRef(baseDir, src); ref != "" {
					setAttrValue(n, "src", "images/"+path.Base(ref))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

// resolveImageRef resolves a src attribute to a ZIP-internal path.
// Returns "" for external, data, or empty references.
func resolveImageRef(baseDir, src string) string {
	if src == "" ||
		strings.HasPrefix(src, "http://") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "data:") {
		return ""
	}
	// Strip fragment and query parts.
	if i := strings.IndexAny(src, "#?"); i >= 0 {
		src = src[:i]
	}
	if decoded, err := url.PathUnescape(src); err == nil {
		src = decoded
	}
	if src == "" {
		return ""
	}
	if path.IsAbs(src) {
		return path.Clean(strings.TrimPrefix(src, "/"))
	}
	return path.Clean(path.Join(baseDir, src))
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttrValue(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
