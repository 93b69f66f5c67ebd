// Package md converts generated pages to markdown and reads their outline.
package md

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	mainPattern  = regexp.MustCompile(`(?s)<main[^>]*>(.*)</main>`)
	stylePattern = regexp.MustCompile(`(?s)<style[^>]*>.*?</style>`)
)

// FromHTML converts a generated HTML page to markdown. Inline styles are
// dropped and a page with a <main> element is reduced to its content.
func FromHTML(html string) (string, error) {
	if html == "" {
		return "", nil
	}

	html = stylePattern.ReplaceAllString(html, "")
	if m := mainPattern.FindStringSubmatch(html); m != nil {
		html = m[1]
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	// Clean up the output - trim whitespace
	return strings.TrimSpace(markdown), nil
}
