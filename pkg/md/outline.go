// outline.go extracts the heading and link structure of a markdown document.
package md

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// mdParser is a pre-configured goldmark instance with GFM table extension.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Heading is a markdown heading and its plain text.
type Heading struct {
	Level int
	Text  string
}

// Link is a markdown link destination and its display text.
type Link struct {
	URL  string
	Text string
}

// Outline is the document structure used to compare rendered views.
type Outline struct {
	Headings []Heading
	Links    []Link
}

// HeadingsAt returns the text of every heading with the given level, in order.
func (o *Outline) HeadingsAt(level int) []string {
	var out []string
	for _, h := range o.Headings {
		if h.Level == level {
			out = append(out, h.Text)
		}
	}
	return out
}

// ParseOutline parses markdown and collects its headings and links.
func ParseOutline(markdown []byte) *Outline {
	outline := &Outline{}
	if len(markdown) == 0 {
		return outline
	}

	doc := mdParser.Parser().Parse(text.NewReader(markdown))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			outline.Headings = append(outline.Headings, Heading{
				Level: node.Level,
				Text:  nodeText(node, markdown),
			})
		case *ast.Link:
			outline.Links = append(outline.Links, Link{
				URL:  string(node.Destination),
				Text: nodeText(node, markdown),
			})
		case *ast.AutoLink:
			url := string(node.URL(markdown))
			outline.Links = append(outline.Links, Link{URL: url, Text: url})
		}
		return ast.WalkContinue, nil
	})

	return outline
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
