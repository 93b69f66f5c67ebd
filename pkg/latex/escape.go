package latex

import "strings"

// textEscaper escapes LaTeX special characters in a single pass, so the
// braces it emits are never escaped again.
var textEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`_`, `\_`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`$`, `\$`,
	`{`, `\{`,
	`}`, `\}`,
	`^`, `\^{}`,
	`~`, `\textasciitilde{}`,
)

// EscapeText makes arbitrary text safe to embed in LaTeX source.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}
