// Package checkcmd provides the check command.
package checkcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/check"
	"github.com/open-cli-collective/cvgen/internal/view"
)

type checkOptions struct {
	output  string
	noColor bool
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare the generated outputs with each other",
		Long: `Compare the HTML, Markdown and JSON outputs and report where they
disagree: projects present in one rendering but not another, and link
destinations that do not look like URLs or email addresses. Configuration
problems are reported as well.

Findings are advisory; the command does not fail because of them.`,
		Example: `  # Check after regenerating
  cvgen generate all && cvgen check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			opts := &checkOptions{}
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runCheck(opts, env)
		},
	}

	return cmd
}

func runCheck(opts *checkOptions, env *app.Env) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(env.Stdout)

	report := check.Run(env)
	if report.Projects == nil {
		report.Projects = []string{}
	}
	if report.Warnings == nil {
		report.Warnings = []string{}
	}

	if renderer.Format() == view.FormatJSON {
		return renderer.RenderJSON(report)
	}

	for _, w := range report.Warnings {
		renderer.Warning(w)
	}

	summary := fmt.Sprintf("%d projects, %d links checked", len(report.Projects), report.Links)
	if report.OK() {
		renderer.Success("Outputs agree: " + summary)
		return nil
	}
	renderer.Error(fmt.Sprintf("%d findings (%s)", len(report.Warnings), summary))
	return nil
}
