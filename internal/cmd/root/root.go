// Package root provides the root command for the cvgen CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/cmd/checkcmd"
	"github.com/open-cli-collective/cvgen/internal/cmd/completion"
	"github.com/open-cli-collective/cvgen/internal/cmd/configcmd"
	"github.com/open-cli-collective/cvgen/internal/cmd/entries"
	"github.com/open-cli-collective/cvgen/internal/cmd/fetchpr"
	generatecmd "github.com/open-cli-collective/cvgen/internal/cmd/generate"
	initcmd "github.com/open-cli-collective/cvgen/internal/cmd/init"
	"github.com/open-cli-collective/cvgen/internal/version"
)

// NewCmdRoot creates the root command for cvgen.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cvgen",
		Short: "Generate HTML, Markdown and JSON résumés from LaTeX sections",
		Long: `cvgen turns the LaTeX section files of a résumé into a web page,
a Markdown README and a JSON Resume document, and keeps the
"latest merged pull request" line up to date from GitHub.

Run it from the résumé repository (or its scripts directory), or
point it there with --root.

Get started by running: cvgen init`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version.Version,
		PersistentPreRunE: setupEnv,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ./cvgen.yml, then ~/.config/cvgen/config.yml)")
	cmd.PersistentFlags().String("root", "", "résumé repository root (default: current directory)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug diagnostics")

	// Set version template
	cmd.SetVersionTemplate("cvgen version " + version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(generatecmd.NewCmdGenerate())
	cmd.AddCommand(fetchpr.NewCmdFetchPR())
	cmd.AddCommand(entries.NewCmdEntries())
	cmd.AddCommand(checkcmd.NewCmdCheck())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

// setupEnv builds the process Env from the global flags and stores it in
// the command context.
func setupEnv(cmd *cobra.Command, _ []string) error {
	if skipEnv(cmd) {
		return nil
	}

	root, _ := cmd.Flags().GetString("root")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	env, err := app.New(app.Options{
		Root:       root,
		ConfigPath: configPath,
		Verbose:    verbose,
		NoColor:    noColor,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	cmd.SetContext(app.WithEnv(cmd.Context(), env))
	return nil
}

func skipEnv(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[app.SkipEnvAnnotation] != "" {
			return true
		}
	}
	return false
}
