// plain.go flattens LaTeX markup to plain text.
package latex

import "strings"

// Shared patterns for constructs the renderers handle the same way.
const (
	lineBreakPattern = `\\\\(\[\d+pt\])?`
	beginPattern     = `\\begin\{[^}]+\}(\[[^\]]*\])?`
	endPattern       = `\\end\{[^}]+\}`
)

// plainRules is the flattening table. Order matters: wrappers are unwrapped
// before spacing commands are dropped, and line breaks are produced before
// blank lines are collapsed.
var plainRules = []Rule{
	{Name: "comments", Rewrite: StripComments},
	Command("textbf", 1, first),
	Command("textit", 1, first),
	Command("href", 2, second),
	Command("section", 1, first),
	Drop("noindent", 0),
	Drop("quad", 0),
	Drop("hfill", 0),
	Drop("par", 0),
	Drop("vspace", 1),
	Pattern("linebreak", lineBreakPattern, "\n"),
	Const("item", "\n"),
	Command("textbar", 1, func([]string) string { return "|" }),
	Pattern("begin", beginPattern, ""),
	Pattern("end", endPattern, ""),
	Drop("input", 1),
	Pattern("blank lines", `\n\s*\n\s*\n+`, "\n\n"),
}

// PlainRules returns a copy of the flattening table.
func PlainRules() []Rule {
	return append([]Rule(nil), plainRules...)
}

// ToPlain converts markup to plain text. Formatting and link URLs are
// discarded; only display text survives. The conversion is lossy.
func ToPlain(text string) string {
	return strings.TrimSpace(Apply(text, plainRules))
}

func first(args []string) string  { return args[0] }
func second(args []string) string { return args[1] }
