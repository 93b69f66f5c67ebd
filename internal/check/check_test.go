package check

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/config"
	"github.com/open-cli-collective/cvgen/internal/generate"
)

const projectsTeX = `\section{Projects}
\cventry{Ledger}{Java}{\href{https://github.com/u/ledger}{GitHub}}{\begin{itemize}\item Built it\end{itemize}}
\cventry{Notes}{Go}{Internal}{Small CLI}
`

func TestRun_GeneratedOutputsAgree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sections"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sections", "projects.tex"), []byte(projectsTeX), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sections", "summary.tex"),
		[]byte("\\section{Summary}\n\\noindent Backend developer.\n"), 0644))

	cfg := config.Default()
	cfg.Paths.Sections = []string{"summary.tex", "projects.tex"}
	env := &app.Env{
		Root:   root,
		Config: cfg,
		Log:    zap.NewNop().Sugar(),
		Now:    time.Now,
	}

	_, err := generate.New(env).All(context.Background())
	require.NoError(t, err)

	report := Run(env)
	assert.True(t, report.OK(), strings.Join(report.Warnings, "\n"))
	assert.Equal(t, []string{"Ledger", "Notes"}, report.Projects)
	assert.Greater(t, report.Links, 0)
}

func TestRun_MissingOutputs(t *testing.T) {
	env := &app.Env{
		Root:   t.TempDir(),
		Config: config.Default(),
		Log:    zap.NewNop().Sugar(),
	}

	report := Run(env)
	assert.False(t, report.OK())
	assert.Equal(t, []string{
		"html output is missing or empty",
		"markdown output is missing or empty",
		"json output is missing or empty",
	}, report.Warnings)
}

func TestRun_ReportsConfigProblems(t *testing.T) {
	cfg := config.Default()
	cfg.GitHub.Username = config.PlaceholderUsername
	env := &app.Env{Root: t.TempDir(), Config: cfg, Log: zap.NewNop().Sugar()}

	report := Run(env)
	assert.Contains(t, report.Warnings, "config: github.username is not set; the latest PR will use the fallback text")
}

func TestCompare_TitleDivergence(t *testing.T) {
	html := `<html><body><main><h2>Projects</h2>
<div class="entry"><h3>Alpha</h3></div>
<div class="entry"><h3>Beta</h3></div>
</main></body></html>`
	markdown := "## Projects\n\n### Alpha\n"
	jsonDoc := []byte(`{"projects": [{"name": "Alpha"}, {"name": "Gamma"}]}`)

	report := Compare(html, markdown, jsonDoc)

	assert.Equal(t, []string{"Alpha", "Gamma"}, report.Projects)
	assert.ElementsMatch(t, []string{
		`project "Gamma" is in json but not in html`,
		`project "Gamma" is in json but not in markdown`,
		`entry "Beta" is in html but not in markdown`,
	}, report.Warnings)
}

func TestCompare_TitlesWithMarkup(t *testing.T) {
	html := `<main><div class="entry"><h3><strong>Ledger</strong> v2</h3></div></main>`
	markdown := "### **Ledger** v2\n"
	jsonDoc := []byte(`{"projects": [{"name": "\\textbf{Ledger} v2"}]}`)

	report := Compare(html, markdown, jsonDoc)

	assert.Empty(t, report.Warnings)
}

func TestRun_GeneratedOutputsAgreeWithMarkupInTitle(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sections"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sections", "projects.tex"),
		[]byte(`\section{Projects}`+"\n"+`\cventry{\textbf{Ledger} v2}{Go}{Internal}{Built it}`+"\n"), 0644))

	cfg := config.Default()
	cfg.Paths.Sections = []string{"projects.tex"}
	env := &app.Env{Root: root, Config: cfg, Log: zap.NewNop().Sugar(), Now: time.Now}

	_, err := generate.New(env).All(context.Background())
	require.NoError(t, err)

	report := Run(env)
	assert.True(t, report.OK(), strings.Join(report.Warnings, "\n"))
}

func TestCompare_Links(t *testing.T) {
	markdown := `### Alpha

[ok](https://example.com) [bad](http://nodot) [mail](mailto:jane@example.com) [badmail](mailto:jane@) [pdf](cv.pdf)
`
	html := `<main><h3>Alpha</h3><a href="https://example.com">ok</a></main>`
	jsonDoc := []byte(`{"basics": {"email": "jane@example.com", "url": "https://jane.dev"}, "projects": [{"name": "Alpha", "url": "ftp://files.example.com"}]}`)

	report := Compare(html, markdown, jsonDoc)

	assert.ElementsMatch(t, []string{
		`invalid URL "ftp://files.example.com"`,
		`invalid URL "http://nodot"`,
		`invalid email address "jane@"`,
	}, report.Warnings)
	// example.com, jane.dev, nodot, ftp, two mailto; cv.pdf is relative.
	assert.Equal(t, 6, report.Links)
}

func TestCompare_InvalidJSON(t *testing.T) {
	report := Compare("<main></main>", "# x", []byte("{not json"))

	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "json output is not valid JSON")
	assert.Empty(t, report.Projects)
}
