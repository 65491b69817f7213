// Package htmltext extracts visible text from protocol pages published
// as HTML, for the corpus import tool.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Extract returns the concatenated text content of an HTML document,
// skipping script and style elements. Unparseable input is returned
// trimmed but otherwise as-is.
func Extract(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(buf.String()), " ")
}
