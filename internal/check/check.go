// Package check compares the generated outputs with each other and reports
// where they diverge. It never modifies anything.
package check

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/resume"
	"github.com/open-cli-collective/cvgen/internal/validate"
	"github.com/open-cli-collective/cvgen/pkg/latex"
	"github.com/open-cli-collective/cvgen/pkg/md"
)

// entryHeadingLevel is the heading level both renderers use for entries.
const entryHeadingLevel = 3

// Report lists advisory findings.
type Report struct {
	Projects []string `json:"projects"` // project names found in the JSON output
	Links    int      `json:"links"`    // distinct link destinations checked
	Warnings []string `json:"warnings"`
}

// OK reports whether no findings were recorded.
func (r *Report) OK() bool {
	return len(r.Warnings) == 0
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Run reads the configured outputs of env and compares them.
func Run(env *app.Env) *Report {
	cfg := env.Config

	read := func(rel string) string {
		data, err := os.ReadFile(env.Path(rel))
		if err != nil {
			env.Log.Debugw("Output unreadable", "file", rel, "error", err)
			return ""
		}
		return string(data)
	}

	report := Compare(read(cfg.Outputs.HTML), read(cfg.Outputs.Markdown), []byte(read(cfg.Outputs.JSON)))
	for _, problem := range cfg.Validate() {
		report.warnf("config: %s", problem)
	}
	return report
}

// Compare checks that the three renderings agree on project titles and that
// every link destination they contain looks valid. Empty inputs are reported
// as missing.
func Compare(htmlPage, markdownDoc string, jsonDoc []byte) *Report {
	report := &Report{}

	var htmlOutline, mdOutline *md.Outline
	if htmlPage == "" {
		report.warnf("html output is missing or empty")
	} else if converted, err := md.FromHTML(htmlPage); err != nil {
		report.warnf("html output could not be converted: %v", err)
	} else {
		htmlOutline = md.ParseOutline([]byte(converted))
	}

	if markdownDoc == "" {
		report.warnf("markdown output is missing or empty")
	} else {
		mdOutline = md.ParseOutline([]byte(markdownDoc))
	}

	var doc *resume.Resume
	if len(jsonDoc) == 0 {
		report.warnf("json output is missing or empty")
	} else {
		doc = &resume.Resume{}
		if err := json.Unmarshal(jsonDoc, doc); err != nil {
			report.warnf("json output is not valid JSON: %v", err)
			doc = nil
		}
	}

	if doc != nil {
		for _, p := range doc.Projects {
			report.Projects = append(report.Projects, p.Name)
		}
	}

	compareTitles(report, "html", htmlOutline, doc)
	compareTitles(report, "markdown", mdOutline, doc)
	if htmlOutline != nil && mdOutline != nil {
		diffSets(report, "html", htmlOutline.HeadingsAt(entryHeadingLevel),
			"markdown", mdOutline.HeadingsAt(entryHeadingLevel))
	}

	checkLinks(report, collectLinks(htmlOutline, mdOutline, doc))
	return report
}

// compareTitles reports JSON projects that have no entry heading in a view.
func compareTitles(report *Report, view string, outline *md.Outline, doc *resume.Resume) {
	if outline == nil || doc == nil {
		return
	}
	headings := toSet(outline.HeadingsAt(entryHeadingLevel))
	for _, p := range doc.Projects {
		// Names keep their LaTeX markup; headings are already rendered.
		if name := latex.ToPlain(p.Name); !headings[name] {
			report.warnf("project %q is in json but not in %s", name, view)
		}
	}
}

// diffSets reports titles present in one view and not the other.
func diffSets(report *Report, aName string, a []string, bName string, b []string) {
	aSet, bSet := toSet(a), toSet(b)
	for _, s := range sortedKeys(aSet) {
		if !bSet[s] {
			report.warnf("entry %q is in %s but not in %s", s, aName, bName)
		}
	}
	for _, s := range sortedKeys(bSet) {
		if !aSet[s] {
			report.warnf("entry %q is in %s but not in %s", s, bName, aName)
		}
	}
}

// collectLinks gathers every absolute link destination, deduplicated.
func collectLinks(html, markdown *md.Outline, doc *resume.Resume) []string {
	seen := map[string]bool{}
	add := func(u string) {
		if u != "" {
			seen[u] = true
		}
	}

	for _, o := range []*md.Outline{html, markdown} {
		if o == nil {
			continue
		}
		for _, l := range o.Links {
			add(l.URL)
		}
	}

	if doc != nil {
		add(doc.Basics.URL)
		if doc.Basics.Email != "" {
			add("mailto:" + doc.Basics.Email)
		}
		for _, p := range doc.Basics.Profiles {
			add(p.URL)
		}
		for _, p := range doc.Projects {
			add(p.URL)
		}
		for _, v := range doc.Volunteer {
			add(v.URL)
		}
	}

	return sortedKeys(seen)
}

// checkLinks validates http(s) and mailto destinations. Relative links,
// such as the PDF download, are skipped.
func checkLinks(report *Report, links []string) {
	for _, link := range links {
		switch {
		case strings.HasPrefix(link, "mailto:"):
			report.Links++
			if addr := strings.TrimPrefix(link, "mailto:"); !validate.Email(addr) {
				report.warnf("invalid email address %q", addr)
			}
		case strings.Contains(link, "://"):
			report.Links++
			if !validate.URL(link) {
				report.warnf("invalid URL %q", link)
			}
		}
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
