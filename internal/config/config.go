// Package config provides configuration management for cvgen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/cvgen/internal/validate"
)

// PlaceholderUsername is the username shipped in templates; it disables the PR lookup.
const PlaceholderUsername = "yourusername"

// Config holds the cvgen configuration.
type Config struct {
	Personal  Personal  `yaml:"personal"`
	GitHub    GitHub    `yaml:"github"`
	Paths     Paths     `yaml:"paths"`
	Outputs   Outputs   `yaml:"outputs"`
	Fallbacks Fallbacks `yaml:"fallbacks"`
	Resume    Resume    `yaml:"resume"`

	// envProblems holds overlay values LoadFromEnv could not use.
	envProblems []string
}

// Personal is the contact block shared by every output format.
type Personal struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title"`
	Email    string   `yaml:"email"`
	Phone    string   `yaml:"phone"`
	LinkedIn string   `yaml:"linkedin"`
	GitHub   string   `yaml:"github"`
	Website  string   `yaml:"website"`
	Location Location `yaml:"location"`
}

// Location is where the résumé owner is based.
type Location struct {
	City        string `yaml:"city"`
	CountryCode string `yaml:"country_code"`
	Region      string `yaml:"region"`
}

// GitHub configures the latest-PR lookup.
type GitHub struct {
	Username string   `yaml:"username"`
	Token    string   `yaml:"token,omitempty"`
	APIBase  string   `yaml:"api_base"`
	Timeout  Duration `yaml:"timeout"`
}

// Paths locates the LaTeX fragments.
type Paths struct {
	SectionsDir string   `yaml:"sections_dir"`
	Sections    []string `yaml:"sections"`
}

// Outputs are the generated files, relative to the project root.
type Outputs struct {
	HTML     string `yaml:"html"`
	JSON     string `yaml:"json"`
	Markdown string `yaml:"markdown"`
	LatestPR string `yaml:"latest_pr"`
}

// Fallbacks are used when a fragment or the API cannot supply a value.
type Fallbacks struct {
	Summary  string `yaml:"summary"`
	LatestPR string `yaml:"latest_pr"`
}

// Resume holds the JSON Resume sections that are not parsed from LaTeX.
type Resume struct {
	OpenSource []Contribution `yaml:"open_source"`
	Education  []Education    `yaml:"education"`
	Skills     []SkillGroup   `yaml:"skills"`
	Languages  []Language     `yaml:"languages"`
}

// Contribution is one open-source program or organisation.
type Contribution struct {
	Organization string `yaml:"organization"`
	Position     string `yaml:"position"`
	URL          string `yaml:"url"`
	StartDate    string `yaml:"start_date"`
	EndDate      string `yaml:"end_date"`
	Summary      string `yaml:"summary"`
}

// Education is one degree.
type Education struct {
	Institution string   `yaml:"institution"`
	URL         string   `yaml:"url"`
	Area        string   `yaml:"area"`
	StudyType   string   `yaml:"study_type"`
	StartDate   string   `yaml:"start_date"`
	EndDate     string   `yaml:"end_date"`
	Score       string   `yaml:"score"`
	Courses     []string `yaml:"courses"`
}

// SkillGroup is a named list of skills.
type SkillGroup struct {
	Name     string   `yaml:"name"`
	Level    string   `yaml:"level"`
	Keywords []string `yaml:"keywords"`
}

// Language is a spoken language.
type Language struct {
	Language string `yaml:"language"`
	Fluency  string `yaml:"fluency"`
}

// Duration is a time.Duration written as "10s" in YAML.
type Duration struct {
	time.Duration
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Personal: Personal{
			Name:     "Abhinesh Jha",
			Title:    "Backend Developer",
			Email:    "jhaabhinesh977@gmail.com",
			LinkedIn: "https://linkedin.com/in/abhineshjha",
			GitHub:   "https://github.com/Abhineshhh",
			Website:  "https://abhineshhh.me",
			Location: Location{CountryCode: "IN"},
		},
		GitHub: GitHub{
			Username: "Abhineshhh",
			APIBase:  "https://api.github.com",
			Timeout:  Duration{10 * time.Second},
		},
		Paths: Paths{
			SectionsDir: "sections",
			Sections: []string{
				"summary.tex",
				"projects.tex",
				"open_source.tex",
				"education.tex",
				"skills.tex",
			},
		},
		Outputs: Outputs{
			HTML:     "docs/web/index.html",
			JSON:     "docs/resume.json",
			Markdown: "docs/README.md",
			LatestPR: "sections/latest_pr.tex",
		},
		Fallbacks: Fallbacks{
			Summary:  "Backend developer specializing in Java and Spring Boot with expertise in building production-grade distributed systems.",
			LatestPR: `\item \textbf{Active Contributor:} Ongoing contributions to open-source projects.`,
		},
		Resume: Resume{
			OpenSource: []Contribution{
				{
					Organization: "HackSquad by Novu",
					Position:     "Open Source Contributor",
					URL:          "https://github.com/novuhq/novu",
					StartDate:    "2024",
					EndDate:      "2024",
					Summary:      "Winner of HackSquad open-source program. Developed new features and improved code quality through testing and documentation.",
				},
				{
					Organization: "Social Summer of Code",
					Position:     "Open Source Contributor",
					StartDate:    "2024",
					EndDate:      "2024",
					Summary:      "Winner of Social Summer of Code. Enhanced frontend UX and modularized Python programs.",
				},
				{
					Organization: "Innogeeks Winter of Code",
					Position:     "Open Source Contributor",
					StartDate:    "2023",
					EndDate:      "2023",
					Summary:      "Winner of Innogeeks Winter of Code. Implemented features and resolved bugs in web applications.",
				},
			},
			Education: []Education{
				{
					Institution: "Maharshi Dayanand University",
					Area:        "Computer Science",
					StudyType:   "B.Tech",
					Score:       "8.2/10 CGPA",
					Courses: []string{
						"Operating Systems",
						"Database Management Systems",
						"Computer Networks",
						"Data Structures",
						"Algorithms",
					},
				},
			},
			Skills: []SkillGroup{
				{Name: "Languages", Keywords: []string{"Java", "C", "C++", "Python", "SQL", "JavaScript"}},
				{Name: "Frameworks & Libraries", Keywords: []string{"Spring Boot", "Spring MVC", "Spring Data JPA", "Spring Security", "Hibernate", "Maven"}},
				{Name: "Databases", Keywords: []string{"MySQL", "PostgreSQL", "MongoDB"}},
				{Name: "Tools & Technologies", Keywords: []string{"Git", "Docker", "Postman", "Linux", "Swagger", "Firebase"}},
			},
			Languages: []Language{
				{Language: "English", Fluency: "Professional"},
			},
		},
	}
}

// Validate reports problems that degrade the output. None of them stop generation.
func (c *Config) Validate() []string {
	var problems []string

	if c.Personal.Name == "" {
		problems = append(problems, "personal.name is empty")
	}
	if c.Personal.Email != "" && !validate.Email(c.Personal.Email) {
		problems = append(problems, fmt.Sprintf("personal.email %q does not look like an email address", c.Personal.Email))
	}
	links := []struct{ key, value string }{
		{"personal.linkedin", c.Personal.LinkedIn},
		{"personal.github", c.Personal.GitHub},
		{"personal.website", c.Personal.Website},
		{"github.api_base", c.GitHub.APIBase},
	}
	for _, l := range links {
		if l.value != "" && !validate.URL(l.value) {
			problems = append(problems, fmt.Sprintf("%s %q does not look like a URL", l.key, l.value))
		}
	}

	if c.GitHub.Username == "" || c.GitHub.Username == PlaceholderUsername {
		problems = append(problems, "github.username is not set; the latest PR will use the fallback text")
	}
	if c.GitHub.Timeout.Duration <= 0 {
		problems = append(problems, "github.timeout must be positive")
	}
	if c.Paths.SectionsDir == "" {
		problems = append(problems, "paths.sections_dir is empty")
	}

	return append(problems, c.envProblems...)
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: CVGEN_* → GITHUB_TOKEN → existing config value
func (c *Config) LoadFromEnv() {
	if username := os.Getenv("CVGEN_GITHUB_USERNAME"); username != "" {
		c.GitHub.Username = username
	}
	if token := getEnvWithFallback("CVGEN_GITHUB_TOKEN", "GITHUB_TOKEN"); token != "" {
		c.GitHub.Token = token
	}
	if timeout := os.Getenv("CVGEN_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.GitHub.Timeout = Duration{d}
		} else {
			c.envProblems = append(c.envProblems,
				fmt.Sprintf("CVGEN_API_TIMEOUT %q is not a valid duration; using %s", timeout, c.GitHub.Timeout))
		}
	}
	if dir := os.Getenv("CVGEN_SECTIONS_DIR"); dir != "" {
		c.Paths.SectionsDir = dir
	}
}

// EnvVars lists the environment variables LoadFromEnv reads.
var EnvVars = []string{"CVGEN_GITHUB_USERNAME", "CVGEN_GITHUB_TOKEN", "GITHUB_TOKEN", "CVGEN_API_TIMEOUT", "CVGEN_SECTIONS_DIR"}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// ProjectFile is the per-project config file name.
const ProjectFile = "cvgen.yml"

// DefaultConfigPath returns the configuration file path for a project root.
// A cvgen.yml in the root wins over the user config.
func DefaultConfigPath(root string) string {
	if root != "" {
		local := filepath.Join(root, ProjectFile)
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "cvgen", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".cvgen", "config.yml")
	}

	return filepath.Join(home, ".config", "cvgen", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Restricted permissions: the file may hold a token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file yields the defaults; a malformed one is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
