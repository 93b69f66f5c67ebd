// entry.go scans text for \cventry invocations.
package latex

import (
	"fmt"
	"strings"
)

// EntryMacro is the command that introduces a résumé entry.
const EntryMacro = `\cventry`

// entryArgs is the number of arguments \cventry takes:
// title, tech, link expression and body.
const entryArgs = 4

// Entry is one parsed \cventry{title}{tech}{link}{content} invocation.
type Entry struct {
	Title    string `json:"title"`
	Tech     string `json:"tech"`
	LinkURL  string `json:"link_url"`
	LinkText string `json:"link_text"`
	Content  string `json:"content"` // raw, not flattened
}

// Span is the [Start, End) byte range of a parsed invocation.
type Span struct {
	Start int
	End   int
}

// ScanResult holds the entries found in a text, in source order.
type ScanResult struct {
	Entries  []Entry
	Spans    []Span   // Spans[i] covers Entries[i]
	Warnings []string // skipped invocations
}

// addWarning records a skipped invocation.
func (sr *ScanResult) addWarning(format string, args ...interface{}) {
	sr.Warnings = append(sr.Warnings, fmt.Sprintf(format, args...))
}

// ParseEntries returns every well-formed \cventry in text.
// Malformed invocations are skipped.
func ParseEntries(text string) []Entry {
	return ScanEntries(text).Entries
}

// ScanEntries scans text for \cventry invocations. A malformed invocation is
// skipped by moving past its command token only, so the text that follows is
// still scanned and the loop always terminates.
func ScanEntries(text string) *ScanResult {
	result := &ScanResult{}
	pos := 0

	for pos < len(text) {
		idx := strings.Index(text[pos:], EntryMacro)
		if idx < 0 {
			break
		}
		start := pos + idx
		afterToken := start + len(EntryMacro)

		args, end, err := ExtractArgs(text, afterToken, entryArgs)
		if err != nil {
			result.addWarning("skipping %s at offset %d: %v", EntryMacro, start, err)
			pos = afterToken
			continue
		}

		url, linkText := parseLink(args[2])
		result.Entries = append(result.Entries, Entry{
			Title:    args[0],
			Tech:     args[1],
			LinkURL:  url,
			LinkText: linkText,
			Content:  args[3],
		})
		result.Spans = append(result.Spans, Span{Start: start, End: end})
		pos = end
	}

	return result
}

// RemoveEntries deletes every well-formed \cventry invocation from text,
// leaving the surrounding text and any malformed invocations in place.
func RemoveEntries(text string) string {
	spans := ScanEntries(text).Spans
	if len(spans) == 0 {
		return text
	}

	var sb strings.Builder
	last := 0
	for _, span := range spans {
		sb.WriteString(text[last:span.Start])
		last = span.End
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// parseLink splits a link expression into URL and display text. Without an
// \href{url}{text} inside, the URL is empty and the expression is the text.
func parseLink(expr string) (url, text string) {
	pos := 0
	for {
		idx := strings.Index(expr[pos:], `\href`)
		if idx < 0 {
			return "", expr
		}
		start := pos + idx + len(`\href`)

		args, _, err := ExtractArgs(expr, start, 2)
		if err == nil && args[0] != "" && args[1] != "" {
			return args[0], args[1]
		}
		pos = start
	}
}
