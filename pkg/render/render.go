// Package render turns LaTeX résumé fragments into HTML and Markdown.
package render

import (
	"regexp"
	"strings"

	"github.com/open-cli-collective/cvgen/pkg/latex"
)

// Renderer converts one fragment into a target format. Entries are rendered
// with an entry template and appended after the rest of the fragment, then
// the format's substitution table rewrites the remaining markup.
type Renderer struct {
	name       string
	rules      []latex.Rule
	entry      func(e latex.Entry, body string) string
	blankLines *regexp.Regexp
	blankRepl  string
}

// Result is a rendered fragment plus the diagnostics gathered while scanning it.
type Result struct {
	Text     string
	Entries  int
	Warnings []string
}

// Name returns the format name, e.g. "html".
func (r *Renderer) Name() string {
	return r.name
}

// Section renders a whole fragment.
func (r *Renderer) Section(text string) *Result {
	result := &Result{}
	if text == "" {
		return result
	}

	text = latex.StripComments(text)

	scan := latex.ScanEntries(text)
	result.Warnings = scan.Warnings
	result.Entries = len(scan.Entries)

	if len(scan.Entries) > 0 {
		rendered := make([]string, 0, len(scan.Entries))
		for _, e := range scan.Entries {
			rendered = append(rendered, r.entry(e, r.Fragment(e.Content)))
		}
		text = latex.RemoveEntries(text) + strings.Join(rendered, "\n")
	}

	result.Text = r.Fragment(text)
	return result
}

// Fragment applies the substitution table to text that holds no entries.
func (r *Renderer) Fragment(text string) string {
	if text == "" {
		return ""
	}
	text = latex.Apply(text, r.rules)
	text = r.blankLines.ReplaceAllString(text, r.blankRepl)
	return strings.TrimSpace(text)
}

// environment returns a rule that rewrites \begin{name}[opts] to s.
func environment(name, s string) latex.Rule {
	return latex.Pattern(`\begin{`+name+`}`, `\\begin\{`+regexp.QuoteMeta(name)+`\}(\[[^\]]*\])?`, s)
}

// endEnvironment returns a rule that rewrites \end{name} to s.
func endEnvironment(name, s string) latex.Rule {
	return latex.Pattern(`\end{`+name+`}`, `\\end\{`+regexp.QuoteMeta(name)+`\}`, s)
}
