package markdown

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fallback is the deterministic structural translator: a pure recursion
// over the parsed tree dispatching on tag identity. Inline elements are
// converted by recursing into children so emphasis, links and lists nest
// correctly regardless of surrounding containers.
func (c *Converter) fallback(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		c.log.Warn("fallback converter could not parse html", "error", err)
		return ""
	}

	root := doc
	if body := firstElement(doc, atom.Body); body != nil {
		root = body
	}
	return convertNode(root)
}

func convertNode(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return collapseText(n.Data)
	case html.ElementNode:
		return convertElement(n)
	case html.DocumentNode:
		return convertChildren(n)
	default:
		return ""
	}
}

func convertElement(n *html.Node) string {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		return "\n\n" + strings.Repeat("#", level) + " " + strings.TrimSpace(convertChildren(n)) + "\n\n"

	case atom.P:
		return "\n\n" + strings.TrimSpace(convertChildren(n)) + "\n\n"

	case atom.Strong, atom.B:
		return "**" + convertChildren(n) + "**"

	case atom.Em, atom.I:
		return "*" + convertChildren(n) + "*"

	case atom.Code:
		return "`" + plainText(n) + "`"

	case atom.Pre:
		return "\n\n```\n" + strings.Trim(rawText(n), "\n") + "\n```\n\n"

	case atom.A:
		text := strings.TrimSpace(convertChildren(n))
		if href := attr(n, "href"); href != "" {
			return "[" + text + "](" + href + ")"
		}
		return text

	case atom.Ul:
		var items []string
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if li.Type == html.ElementNode && li.DataAtom == atom.Li {
				items = append(items, "- "+strings.TrimSpace(convertChildren(li)))
			}
		}
		return "\n" + strings.Join(items, "\n") + "\n"

	case atom.Ol:
		var items []string
		for li := n.FirstChild; li != nil; li = li.NextSibling {
			if li.Type == html.ElementNode && li.DataAtom == atom.Li {
				items = append(items, fmt.Sprintf("%d. %s", len(items)+1, strings.TrimSpace(convertChildren(li))))
			}
		}
		return "\n" + strings.Join(items, "\n") + "\n"

	case atom.Blockquote:
		var quoted []string
		for _, line := range strings.Split(strings.TrimSpace(convertChildren(n)), "\n") {
			if strings.TrimSpace(line) != "" {
				quoted = append(quoted, "> "+line)
			}
		}
		return "\n\n" + strings.Join(quoted, "\n") + "\n\n"

	case atom.Br:
		return "\n"

	case atom.Hr:
		return "\n\n---\n\n"

	case atom.Div, atom.Section, atom.Article, atom.Span, atom.Body:
		return convertChildren(n)

	case atom.Script, atom.Style, atom.Head, atom.Meta, atom.Link, atom.Title:
		return ""

	default:
		return plainText(n)
	}
}

func convertChildren(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(convertNode(c))
	}
	return b.String()
}

// plainText returns the whitespace-collapsed text of a subtree, tags dropped.
func plainText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// rawText returns the text of a subtree with whitespace preserved,
// for fenced code blocks.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// collapseText reduces whitespace runs in a text node to single spaces,
// preserving a leading/trailing space when one was present.
func collapseText(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out = out + " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func firstElement(root *html.Node, a atom.Atom) *html.Node {
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
