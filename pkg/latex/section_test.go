package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection(t *testing.T) {
	text := "\\section{Summary}\nHello there.\n\\section{Projects}\nP\n\\end{document}\ntrailer"

	body, ok := Section(text, "Summary")
	require.True(t, ok)
	assert.Equal(t, "Hello there.", body)

	body, ok = Section(text, "Projects")
	require.True(t, ok)
	assert.Equal(t, "P", body)

	_, ok = Section(text, "Education")
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	text := "% summary fragment\n\\section{Summary}\n\\noindent Backend developer building \\textbf{distributed} systems.\n"
	summary, ok := Summary(text)
	require.True(t, ok)
	assert.Equal(t, "Backend developer building distributed systems.", summary)
}

func TestSummary_NoMatch(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no section", `\noindent text`},
		{"no noindent", "\\section{Summary}\nplain text"},
		{"empty body", "\\section{Summary}\n\\noindent \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Summary(tt.text)
			assert.False(t, ok)
		})
	}
}
