package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPlain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold and italic", `\textbf{Bold} and \textit{italic} text`, "Bold and italic text"},
		{"href keeps display text", `\href{http://example.com}{Link Text}`, "Link Text"},
		{"section header", `\section{Summary} text`, "Summary text"},
		{"nested wrappers", `\textbf{a \textit{b} c}`, "a b c"},
		{"nested same command", `\textbf{a \textbf{b}}`, "a b"},
		{"comment stripped", "keep % drop this\nnext", "keep \nnext"},
		{"escaped percent kept", `50\% done`, `50\% done`},
		{"spacing commands", `\noindent A\quad B\hfill C\par D`, "A B C D"},
		{"vspace", `A\vspace{4pt}B`, "AB"},
		{"line breaks", `A\\B\\[6pt]C`, "A\nB\nC"},
		{"textbar", `A \textbar{} B`, "A | B"},
		{"items become lines", `\item A\item B`, "A\n B"},
		{"environments", "\\begin{itemize}[leftmargin=*]\n\\item X\n\\end{itemize}", "X"},
		{"input", `\input{sections/latest_pr.tex}done`, "done"},
		{"collapse blank lines", "A\n\n\n\n  \nB", "A\n\nB"},
		{"trim", "  \n text \n ", "text"},
		{"par is not paragraph", `\paragraph{x}`, `\paragraph{x}`},
		{"unbalanced bold left alone", `\textbf{oops`, `\textbf{oops`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPlain(tt.input))
		})
	}
}

func TestToPlain_Idempotent(t *testing.T) {
	inputs := []string{
		"Backend developer specializing in Java.",
		"Line one\n\nLine two\n  indented",
		"A | B, C & D",
		`\textbf{Built} \href{https://x.dev}{things} \\ with \textit{care}`,
	}

	for _, in := range inputs {
		once := ToPlain(in)
		assert.Equal(t, once, ToPlain(once), "input %q", in)
	}
}

func TestPlainRules_ReturnsCopy(t *testing.T) {
	rules := PlainRules()
	rules[0] = Rule{Name: "clobbered", Rewrite: func(string) string { return "" }}
	assert.Equal(t, "x", ToPlain("x"))
}
