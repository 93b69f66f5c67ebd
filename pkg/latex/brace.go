// brace.go implements brace matching and argument extraction for LaTeX commands.
package latex

import "errors"

// NoMatch is returned by MatchBrace when the group is never closed.
const NoMatch = -1

var (
	// ErrMissingBrace means an argument did not start with '{'.
	ErrMissingBrace = errors.New("expected '{'")
	// ErrUnbalancedBrace means an argument group was never closed.
	ErrUnbalancedBrace = errors.New("unbalanced brace")
)

// MatchBrace finds the end of a brace group. start is the index just after an
// opening brace the caller has already consumed. It returns the index just
// after the matching closing brace, or NoMatch if the text ends first.
// A backslash escapes the character that follows it.
func MatchBrace(text string, start int) int {
	if start < 0 {
		return NoMatch
	}

	depth := 1
	for pos := start; pos < len(text); pos++ {
		switch text[pos] {
		case '\\':
			pos++ // skip the escaped character
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return pos + 1
			}
		}
	}
	return NoMatch
}

// ExtractArgs extracts n consecutive brace-delimited arguments starting at start.
// Whitespace between arguments is skipped. On success it returns the argument
// bodies and the position after the last closing brace. On failure nothing is
// consumed: it returns nil, start and the reason.
func ExtractArgs(text string, start, n int) ([]string, int, error) {
	args := make([]string, 0, n)
	pos := start

	for i := 0; i < n; i++ {
		pos = skipSpace(text, pos)

		if pos >= len(text) || text[pos] != '{' {
			return nil, start, ErrMissingBrace
		}

		end := MatchBrace(text, pos+1)
		if end == NoMatch {
			return nil, start, ErrUnbalancedBrace
		}

		args = append(args, text[pos+1:end-1])
		pos = end
	}

	return args, pos, nil
}

// skipSpace returns the first position at or after pos that is not blank.
func skipSpace(text string, pos int) int {
	for pos < len(text) {
		switch text[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}
