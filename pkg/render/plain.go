package render

import (
	"regexp"
	"strings"

	"github.com/open-cli-collective/cvgen/pkg/latex"
)

// Flatten returns a renderer that reduces fragments to plain text.
func Flatten() *Renderer {
	return &Renderer{
		name:       "plain",
		rules:      latex.PlainRules(),
		entry:      plainEntry,
		blankLines: regexp.MustCompile(`\n\s*\n\s*\n+`),
		blankRepl:  "\n\n",
	}
}

func plainEntry(e latex.Entry, body string) string {
	var sb strings.Builder
	sb.WriteString("\n" + e.Title + "\n")
	sb.WriteString(e.Tech + " | " + latex.ToPlain(e.LinkText) + "\n")
	if body != "" {
		sb.WriteString(body + "\n")
	}
	return sb.String()
}
