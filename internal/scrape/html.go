package scrape

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/sdkmap/sdkmap/pkg/errors"
)

// Parse parses an HTML document.
func Parse(data []byte) (*html.Node, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}
	return root, nil
}

// Text flattens all text under a node, fields joined by single spaces.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return CollapseSpace(sb.String())
}

// FindAll returns every descendant element for which match returns true.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// HeadingLevel returns the level of an h1..h6 element, or 0 for anything
// else.
func HeadingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if n.Data[1] < '1' || n.Data[1] > '6' {
		return 0
	}
	return int(n.Data[1] - '0')
}

// Section is a heading plus the flattened text of everything that follows it
// up to the next heading that closes it.
type Section struct {
	Heading string
	Level   int
	Body    string
}

// Sections collects heading-scoped sections from a document. Only headings
// with minLevel <= level <= maxLevel start a section; a section's body runs
// over the heading's following siblings and stops at any heading of level
// <= stopLevel(level). Passing stopAtAny stops at every heading regardless
// of level, matching pages where subsections belong to the next release.
func Sections(root *html.Node, minLevel, maxLevel int, stopAtAny bool) []Section {
	var sections []Section
	for _, h := range FindAll(root, func(n *html.Node) bool {
		level := HeadingLevel(n)
		return level >= minLevel && level <= maxLevel
	}) {
		level := HeadingLevel(h)
		var parts []string
		for sib := h.NextSibling; sib != nil; sib = sib.NextSibling {
			if sibLevel := HeadingLevel(sib); sibLevel != 0 {
				if stopAtAny || sibLevel <= level {
					break
				}
			}
			if sib.Type == html.ElementNode || sib.Type == html.TextNode {
				if text := Text(sib); text != "" {
					parts = append(parts, text)
				}
			}
		}
		sections = append(sections, Section{
			Heading: Text(h),
			Level:   level,
			Body:    strings.Join(parts, " "),
		})
	}
	return sections
}

// Tables returns all table elements in the document.
func Tables(root *html.Node) []*html.Node {
	return FindAll(root, func(n *html.Node) bool { return n.Data == "table" })
}

// Rows returns the cell texts of every tr in a table, th and td alike.
func Rows(table *html.Node) [][]string {
	var rows [][]string
	for _, tr := range FindAll(table, func(n *html.Node) bool { return n.Data == "tr" }) {
		var cells []string
		for _, cell := range FindAll(tr, func(n *html.Node) bool {
			return n.Data == "th" || n.Data == "td"
		}) {
			cells = append(cells, Text(cell))
		}
		rows = append(rows, cells)
	}
	return rows
}

// prunedTags are removed before flattening article prose: navigation,
// tables, footnote markers, and styling carry no release-note sentences.
var prunedTags = map[string]bool{
	"nav":    true,
	"table":  true,
	"sup":    true,
	"style":  true,
	"script": true,
}

// FlatText flattens a document into prose, skipping pruned subtrees.
func FlatText(root *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && prunedTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return CollapseSpace(sb.String())
}
