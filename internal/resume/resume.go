// Package resume builds a JSON Resume document from the configuration and
// the LaTeX fragments.
package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/open-cli-collective/cvgen/internal/config"
	"github.com/open-cli-collective/cvgen/pkg/latex"
)

// Build assembles the document. summaryTeX and projectsTeX are the raw
// fragment sources; either may be empty. fallback reports whether the
// summary came from the configuration because summaryTeX had none.
func Build(cfg *config.Config, summaryTeX, projectsTeX string) (r *Resume, fallback bool) {
	p := cfg.Personal

	summary, ok := latex.Summary(summaryTeX)
	if !ok {
		summary = cfg.Fallbacks.Summary
	}

	r = &Resume{
		Basics: Basics{
			Name:    p.Name,
			Label:   p.Title,
			Email:   p.Email,
			Phone:   p.Phone,
			URL:     p.Website,
			Summary: summary,
			Location: Location{
				City:        p.Location.City,
				CountryCode: p.Location.CountryCode,
				Region:      p.Location.Region,
			},
			Profiles: profiles(p),
		},
		Volunteer: volunteer(cfg.Resume.OpenSource),
		Education: education(cfg.Resume.Education),
		Skills:    skills(cfg.Resume.Skills),
		Languages: languages(cfg.Resume.Languages),
		Projects:  Projects(projectsTeX),
	}

	r.fillEmpty()
	return r, !ok
}

// Projects converts every entry in a projects fragment.
func Projects(tex string) []Project {
	entries := latex.ParseEntries(latex.StripComments(tex))
	projects := make([]Project, 0, len(entries))

	for _, e := range entries {
		highlights := Highlights(e.Content)
		description := e.Title
		if len(highlights) > 0 {
			description = highlights[0]
		}

		projects = append(projects, Project{
			Name:        e.Title,
			Description: description,
			Highlights:  highlights,
			Keywords:    Keywords(e.Tech),
			URL:         e.LinkURL,
			Roles:       []string{"Developer"},
			Type:        "application",
		})
	}
	return projects
}

// Highlights flattens entry content and returns its non-empty lines, skipping
// any that still start with a command.
func Highlights(content string) []string {
	highlights := []string{}
	for _, line := range strings.Split(latex.ToPlain(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, `\`) {
			continue
		}
		highlights = append(highlights, line)
	}
	return highlights
}

// Keywords splits a comma-separated technology list.
func Keywords(tech string) []string {
	keywords := []string{}
	for _, k := range strings.Split(tech, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// ProfileUsername returns the last path segment of a profile URL.
func ProfileUsername(url string) string {
	url = strings.TrimSuffix(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

func profiles(p config.Personal) []Profile {
	var out []Profile
	if p.LinkedIn != "" {
		out = append(out, Profile{Network: "LinkedIn", Username: ProfileUsername(p.LinkedIn), URL: p.LinkedIn})
	}
	if p.GitHub != "" {
		out = append(out, Profile{Network: "GitHub", Username: ProfileUsername(p.GitHub), URL: p.GitHub})
	}
	return out
}

func volunteer(items []config.Contribution) []Volunteer {
	out := make([]Volunteer, 0, len(items))
	for _, c := range items {
		out = append(out, Volunteer{
			Organization: c.Organization,
			Position:     c.Position,
			URL:          c.URL,
			StartDate:    c.StartDate,
			EndDate:      c.EndDate,
			Summary:      c.Summary,
			Highlights:   []string{},
		})
	}
	return out
}

func education(items []config.Education) []Education {
	out := make([]Education, 0, len(items))
	for _, e := range items {
		courses := append([]string{}, e.Courses...)
		out = append(out, Education{
			Institution: e.Institution,
			URL:         e.URL,
			Area:        e.Area,
			StudyType:   e.StudyType,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Score:       e.Score,
			Courses:     courses,
		})
	}
	return out
}

func skills(items []config.SkillGroup) []Skill {
	out := make([]Skill, 0, len(items))
	for _, s := range items {
		out = append(out, Skill{Name: s.Name, Level: s.Level, Keywords: append([]string{}, s.Keywords...)})
	}
	return out
}

func languages(items []config.Language) []Language {
	out := make([]Language, 0, len(items))
	for _, l := range items {
		out = append(out, Language{Language: l.Language, Fluency: l.Fluency})
	}
	return out
}

// fillEmpty replaces nil sections so they encode as [] rather than null.
func (r *Resume) fillEmpty() {
	if r.Basics.Profiles == nil {
		r.Basics.Profiles = []Profile{}
	}
	if r.Work == nil {
		r.Work = []Work{}
	}
	if r.Volunteer == nil {
		r.Volunteer = []Volunteer{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Awards == nil {
		r.Awards = []Award{}
	}
	if r.Certificates == nil {
		r.Certificates = []Certificate{}
	}
	if r.Publications == nil {
		r.Publications = []Publication{}
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	if r.Interests == nil {
		r.Interests = []Interest{}
	}
	if r.References == nil {
		r.References = []Reference{}
	}
	if r.Projects == nil {
		r.Projects = []Project{}
	}
}

// Marshal encodes r with two-space indentation and without HTML escaping,
// followed by a newline.
func Marshal(r *Resume) ([]byte, error) {
	r.fillEmpty()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	return buf.Bytes(), nil
}
