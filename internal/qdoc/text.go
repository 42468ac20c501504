package qdoc

import (
	"strings"

	"golang.org/x/net/html"
)

// Pre-parse fixups applied to every page. qdoc writes an unterminated meta
// tag and the ellipsis entity; both are rewritten before structural parsing.
var normalizer = strings.NewReplacer(
	`<meta charset="utf-8">`, `<meta charset="utf-8"/>`,
	"&hellip;", "...",
)

// Normalize applies the page fixups to raw page content.
func Normalize(data []byte) []byte {
	return []byte(normalizer.Replace(string(data)))
}

// Linearize concatenates the text of every descendant text node of n,
// discarding markup. Whitespace is kept as written.
func Linearize(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// hasClass reports whether n is an element whose class attribute is exactly class.
func hasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return attr.Val == class
		}
	}
	return false
}

// findClass returns the first node in n's subtree, n included, whose class is class.
func findClass(n *html.Node, class string) *html.Node {
	if hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// elementChildren returns the element children of n in document order.
func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}
