// Package generate writes the HTML, Markdown, JSON and latest-PR outputs.
//
// Each entry point reads its fragments, renders them in memory and writes
// exactly one file. Unreadable fragments and failed lookups degrade the
// output; only a failed write is returned as an error.
package generate

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/contrib"
	"github.com/open-cli-collective/cvgen/internal/resume"
	"github.com/open-cli-collective/cvgen/pkg/render"
)

// TimestampLayout formats the "Last updated" line.
const TimestampLayout = "January 02, 2006"

// Fragment names read by the JSON builder.
const (
	SummaryFile  = "summary.tex"
	ProjectsFile = "projects.tex"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// SnippetSource supplies the latest-PR line.
type SnippetSource interface {
	Snippet(ctx context.Context) string
}

// Generator produces the output files for one project.
type Generator struct {
	env *app.Env

	// Snippets defaults to the GitHub fetcher.
	Snippets SnippetSource
}

// New returns a Generator bound to env.
func New(env *app.Env) *Generator {
	return &Generator{
		env:      env,
		Snippets: contrib.New(env.Config, env.Log),
	}
}

// pageData is the template input shared by the HTML and Markdown pages.
type pageData struct {
	Name     string
	Title    string
	Email    string
	LinkedIn string
	GitHub   string
	Website  string
	Sections []string
	Updated  string
}

// HTML writes the web page and returns its path.
func (g *Generator) HTML(_ context.Context) (string, error) {
	g.env.Log.Info("Generating HTML resume...")
	return g.page(render.HTML(), "page.html.tmpl", g.env.Config.Outputs.HTML)
}

// Markdown writes the README and returns its path.
func (g *Generator) Markdown(_ context.Context) (string, error) {
	g.env.Log.Info("Generating Markdown resume...")
	return g.page(render.Markdown(), "readme.md.tmpl", g.env.Config.Outputs.Markdown)
}

// JSON writes the JSON Resume document and returns its path.
func (g *Generator) JSON(_ context.Context) (string, error) {
	g.env.Log.Info("Generating JSON resume...")

	r, fallback := resume.Build(g.env.Config, g.readSection(SummaryFile), g.readSection(ProjectsFile))
	if fallback {
		g.env.Log.Warnw("Could not parse summary, using fallback", "file", SummaryFile)
	}
	data, err := resume.Marshal(r)
	if err != nil {
		return "", err
	}

	path, err := g.writeFile(g.env.Config.Outputs.JSON, data)
	if err != nil {
		return "", err
	}
	g.env.Log.Infow("JSON resume generated", "projects", len(r.Projects))
	return path, nil
}

// LatestPR writes the latest-PR fragment and returns its path and the line
// written.
func (g *Generator) LatestPR(ctx context.Context) (path, line string, err error) {
	line = g.Snippets.Snippet(ctx)
	path, err = g.writeFile(g.env.Config.Outputs.LatestPR, []byte(line+"\n"))
	if err != nil {
		return "", "", err
	}
	return path, line, nil
}

// All writes the HTML, Markdown and JSON outputs, stopping at the first
// failed write.
func (g *Generator) All(ctx context.Context) ([]string, error) {
	steps := []func(context.Context) (string, error){g.HTML, g.Markdown, g.JSON}

	var paths []string
	for _, step := range steps {
		path, err := step(ctx)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (g *Generator) page(r *render.Renderer, tmpl, out string) (string, error) {
	cfg := g.env.Config
	data := pageData{
		Name:     cfg.Personal.Name,
		Title:    cfg.Personal.Title,
		Email:    cfg.Personal.Email,
		LinkedIn: cfg.Personal.LinkedIn,
		GitHub:   cfg.Personal.GitHub,
		Website:  cfg.Personal.Website,
		Updated:  g.env.Now().Format(TimestampLayout),
	}

	for _, name := range cfg.Paths.Sections {
		data.Sections = append(data.Sections, g.renderSection(r, name))
	}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", tmpl, err)
	}

	return g.writeFile(out, buf.Bytes())
}

// renderSection reads and renders one fragment. A missing fragment renders
// as the empty string.
func (g *Generator) renderSection(r *render.Renderer, name string) string {
	text := g.readSection(name)
	if text == "" {
		return ""
	}

	result := r.Section(text)
	for _, w := range result.Warnings {
		g.env.Log.Debugw(w, "file", name, "format", r.Name())
	}
	return result.Text
}

// readSection returns the contents of a fragment, or "" with a warning when
// it is missing, unreadable or empty.
func (g *Generator) readSection(name string) string {
	path := g.env.SectionPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		g.env.Log.Warnw("Section file is unreadable", "file", name, "error", err)
		return ""
	}
	if strings.TrimSpace(string(data)) == "" {
		g.env.Log.Warnw("Section file is empty", "file", name)
		return ""
	}
	return string(data)
}

// writeFile replaces the output at rel, creating parent directories.
func (g *Generator) writeFile(rel string, data []byte) (string, error) {
	path := g.env.Path(rel)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		g.env.Log.Errorw("Failed to write output", "file", rel, "error", err)
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		g.env.Log.Errorw("Failed to write output", "file", rel, "error", err)
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}

	g.env.Log.Infof("Generated: %s", rel)
	return path, nil
}
