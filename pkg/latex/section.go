// section.go extracts \section bodies from a fragment.
package latex

import (
	"regexp"
	"strings"
)

// SummarySection is the section name Summary looks for.
const SummarySection = "Summary"

var (
	sectionRe        = regexp.MustCompile(`\\section\{([^}]*)\}`)
	endDocumentToken = `\end{document}`
	noindentRe       = regexp.MustCompile(`^\\noindent\s+`)
)

// Section returns the trimmed body of \section{name}: everything up to the
// next \section, \end{document} or the end of text.
func Section(text, name string) (string, bool) {
	locs := sectionRe.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		if text[loc[2]:loc[3]] != name {
			continue
		}

		body := text[loc[1]:]
		if i+1 < len(locs) {
			body = text[loc[1]:locs[i+1][0]]
		}
		if idx := strings.Index(body, endDocumentToken); idx >= 0 {
			body = body[:idx]
		}
		return strings.TrimSpace(body), true
	}
	return "", false
}

// Summary extracts the flattened summary paragraph: the body of
// \section{Summary}, which must open with \noindent.
func Summary(text string) (string, bool) {
	body, ok := Section(StripComments(text), SummarySection)
	if !ok {
		return "", false
	}

	loc := noindentRe.FindStringIndex(body)
	if loc == nil {
		return "", false
	}

	summary := ToPlain(body[loc[1]:])
	if summary == "" {
		return "", false
	}
	return summary, true
}
