package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags are elements that start a new visual line when a browser
// flattens a page to innerText.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true,
	"hr": true, "li": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true,
	"th": true, "tr": true, "ul": true,
}

// FromHTML flattens a saved HTML snapshot into the newline-joined visible
// text that Segment expects. Script, style and template content is
// dropped, block elements become line breaks, and blank lines are
// removed. This is for snapshots already captured by the rendering
// collaborator; no fetching or rendering happens here.
func FromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, head").Remove()

	root := doc.Find("body")
	nodes := root.Nodes
	if len(nodes) == 0 {
		nodes = doc.Selection.Nodes
	}

	var b strings.Builder
	for _, n := range nodes {
		writeText(&b, n)
	}

	return strings.Join(splitLines(b.String()), "\n"), nil
}

func writeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	block := n.Type == html.ElementNode && blockTags[n.Data]
	if block {
		b.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteString("\n")
	}
}
