package render

import (
	"fmt"
	"regexp"

	"github.com/open-cli-collective/cvgen/pkg/latex"
)

var markdownRules = []latex.Rule{
	latex.Command("section", 1, func(a []string) string { return "## " + a[0] + "\n" }),
	latex.Command("textbf", 1, func(a []string) string { return "**" + a[0] + "**" }),
	latex.Command("textit", 1, func(a []string) string { return "*" + a[0] + "*" }),
	latex.Command("href", 2, func(a []string) string { return markdownLink(a[0], a[1]) }),
	latex.Drop("noindent", 0),
	latex.Pattern("linebreak", `\\\\(\[\d+pt\])?`, "\n"),
	latex.Pattern("item", `(?m)^[ \t]*\\item\b`, "-"),
	latex.Const("item", "\n-"),
	latex.Const("quad", " "),
	latex.Const("par", "\n"),
	latex.Drop("vspace", 1),
	latex.Command("textbar", 1, func([]string) string { return "|" }),
	latex.Drop("hfill", 0),
	environment("itemizecompact", ""),
	endEnvironment("itemizecompact", ""),
	environment("itemize", ""),
	endEnvironment("itemize", ""),
	latex.Drop("input", 1),
	// Indentation left over from the LaTeX source would turn list items
	// into code blocks.
	latex.Pattern("indent", `(?m)^[ \t]+`, ""),
}

// Markdown returns the Markdown renderer.
func Markdown() *Renderer {
	return &Renderer{
		name:       "markdown",
		rules:      markdownRules,
		entry:      markdownEntry,
		blankLines: regexp.MustCompile(`\n\s*\n\s*\n`),
		blankRepl:  "\n\n",
	}
}

func markdownEntry(e latex.Entry, body string) string {
	link := e.LinkText
	if e.LinkURL != "" {
		link = markdownLink(e.LinkURL, e.LinkText)
	}
	return fmt.Sprintf("\n### %s\n\n*%s* | %s\n\n%s\n", e.Title, e.Tech, link, body)
}

func markdownLink(url, text string) string {
	return "[" + text + "](" + url + ")"
}
