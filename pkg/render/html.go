package render

import (
	"fmt"
	"regexp"

	"github.com/open-cli-collective/cvgen/pkg/latex"
)

var htmlRules = []latex.Rule{
	latex.Command("section", 1, func(a []string) string { return "<h2>" + a[0] + "</h2>" }),
	latex.Command("textbf", 1, func(a []string) string { return "<strong>" + a[0] + "</strong>" }),
	latex.Command("textit", 1, func(a []string) string { return "<em>" + a[0] + "</em>" }),
	latex.Command("href", 2, func(a []string) string { return htmlLink(a[0], a[1]) }),
	latex.Drop("noindent", 0),
	latex.Pattern("linebreak", `\\\\(\[\d+pt\])?`, "<br>"),
	latex.Const("item", "<li>"),
	latex.Const("quad", " "),
	latex.Const("par", "<br>"),
	latex.Drop("vspace", 1),
	latex.Command("textbar", 1, func([]string) string { return "|" }),
	latex.Drop("hfill", 0),
	environment("itemizecompact", `<ul class="compact">`),
	endEnvironment("itemizecompact", "</ul>"),
	environment("itemize", "<ul>"),
	endEnvironment("itemize", "</ul>"),
	latex.Drop("input", 1),
}

// HTML returns the HTML renderer.
func HTML() *Renderer {
	return &Renderer{
		name:       "html",
		rules:      htmlRules,
		entry:      htmlEntry,
		blankLines: regexp.MustCompile(`\n\s*\n`),
		blankRepl:  "\n",
	}
}

func htmlEntry(e latex.Entry, body string) string {
	link := e.LinkText
	if e.LinkURL != "" {
		link = htmlLink(e.LinkURL, e.LinkText)
	}
	return fmt.Sprintf("<div class=\"entry\">\n<h3>%s</h3>\n<p><em>%s</em> | %s</p>\n%s\n</div>",
		e.Title, e.Tech, link, body)
}

func htmlLink(url, text string) string {
	return `<a href="` + url + `" target="_blank">` + text + `</a>`
}
