package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/internal/config"
	"github.com/open-cli-collective/cvgen/internal/view"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective cvgen configuration with source indicators.`,
		Example: `  # Show current config
  cvgen config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			return runShow(cmd.OutOrStdout(), path, noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = config.Default()
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.FormatTable, noColor)
	renderer.SetWriter(w)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVars ...string) {
		if value == "" {
			renderer.RenderKeyValue(label, dim.Sprint("-"))
			return
		}

		source := "config"
		if fileErr != nil {
			source = "default"
		}
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" && v == value {
				source = envVar
				break
			}
		}
		if fileValue != value && !strings.HasPrefix(source, "CVGEN_") && source != "GITHUB_TOKEN" {
			source = "-"
		}

		renderer.RenderKeyValue(label, maskSecret(label, value)+dim.Sprintf("  (source: %s)", source))
	}

	printField("Name", cfg.Personal.Name, fileCfg.Personal.Name)
	printField("Email", cfg.Personal.Email, fileCfg.Personal.Email)
	printField("GitHub user", cfg.GitHub.Username, fileCfg.GitHub.Username, "CVGEN_GITHUB_USERNAME")
	printField("GitHub token", cfg.GitHub.Token, fileCfg.GitHub.Token, "CVGEN_GITHUB_TOKEN", "GITHUB_TOKEN")
	printField("API base", cfg.GitHub.APIBase, fileCfg.GitHub.APIBase)
	printField("API timeout", cfg.GitHub.Timeout.String(), fileCfg.GitHub.Timeout.String(), "CVGEN_API_TIMEOUT")
	printField("Sections dir", cfg.Paths.SectionsDir, fileCfg.Paths.SectionsDir, "CVGEN_SECTIONS_DIR")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found, using defaults)")
	}

	for _, problem := range cfg.Validate() {
		renderer.Warning(problem)
	}

	return nil
}

// maskSecret hides the middle of token values.
func maskSecret(label, value string) string {
	if !strings.Contains(strings.ToLower(label), "token") {
		return value
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
}
