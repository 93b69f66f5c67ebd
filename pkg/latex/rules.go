// rules.go provides the ordered substitution tables used to rewrite LaTeX markup.
package latex

import (
	"regexp"
	"strings"
)

// Rule is one step of a substitution table.
type Rule struct {
	Name    string
	Rewrite func(string) string
}

// Apply runs rules over text in order. Later rules see the output of earlier ones.
func Apply(text string, rules []Rule) string {
	for _, r := range rules {
		text = r.Rewrite(text)
	}
	return text
}

// Command builds a rule that rewrites \name{arg1}...{argN} with fn.
func Command(name string, nargs int, fn func(args []string) string) Rule {
	return Rule{
		Name: `\` + name,
		Rewrite: func(text string) string {
			return ReplaceCommand(text, name, nargs, fn)
		},
	}
}

// Drop builds a rule that removes \name and its nargs arguments.
func Drop(name string, nargs int) Rule {
	return Command(name, nargs, func([]string) string { return "" })
}

// Const builds a rule that replaces the argument-less command \name with s.
func Const(name, s string) Rule {
	return Command(name, 0, func([]string) string { return s })
}

// Pattern builds a rule from a regular expression and a replacement template.
func Pattern(name, expr, repl string) Rule {
	re := regexp.MustCompile(expr)
	return Rule{
		Name: name,
		Rewrite: func(text string) string {
			return re.ReplaceAllString(text, repl)
		},
	}
}

// ReplaceCommand rewrites every \name invocation that has nargs brace arguments.
// Arguments are rewritten first, so nested uses of the same command are handled.
// Invocations whose arguments cannot be extracted are left untouched, and
// \name only matches when it is not followed by another letter.
func ReplaceCommand(text, name string, nargs int, fn func(args []string) string) string {
	token := `\` + name
	if !strings.Contains(text, token) {
		return text
	}

	var sb strings.Builder
	copied := 0
	pos := 0

	for pos < len(text) {
		idx := strings.Index(text[pos:], token)
		if idx < 0 {
			break
		}
		start := pos + idx
		afterToken := start + len(token)

		if isEscaped(text, start) || !isCommandEnd(text, afterToken) {
			pos = afterToken
			continue
		}

		args, end, err := ExtractArgs(text, afterToken, nargs)
		if err != nil {
			pos = afterToken
			continue
		}
		for i := range args {
			args[i] = ReplaceCommand(args[i], name, nargs, fn)
		}

		sb.WriteString(text[copied:start])
		sb.WriteString(fn(args))
		copied = end
		pos = end
	}

	sb.WriteString(text[copied:])
	return sb.String()
}

// StripComments removes % comments up to the end of each line.
// An escaped \% is kept.
func StripComments(text string) string {
	if !strings.Contains(text, "%") {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for pos := strings.IndexByte(line, '%'); pos >= 0; {
			if !isEscaped(line, pos) {
				lines[i] = line[:pos]
				break
			}
			next := strings.IndexByte(line[pos+1:], '%')
			if next < 0 {
				break
			}
			pos += next + 1
		}
	}
	return strings.Join(lines, "\n")
}

// isEscaped reports whether the character at pos is preceded by an odd
// number of backslashes.
func isEscaped(text string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// isCommandEnd reports whether a command name ends at pos.
func isCommandEnd(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	c := text[pos]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
}
