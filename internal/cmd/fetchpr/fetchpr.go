// Package fetchpr provides the fetch-pr command.
package fetchpr

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/generate"
	"github.com/open-cli-collective/cvgen/internal/view"
)

type fetchOptions struct {
	dryRun  bool
	output  string
	noColor bool
}

// NewCmdFetchPR creates the fetch-pr command.
func NewCmdFetchPR() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch-pr",
		Short: "Refresh the latest merged pull request fragment",
		Long: `Look up the most recently updated merged pull request authored by the
configured GitHub user and write it as a LaTeX \item to the latest-PR
fragment.

Any lookup failure (no username, network error, no results) writes the
configured fallback line instead, so the fragment always exists.`,
		Example: `  # Refresh sections/latest_pr.tex
  cvgen fetch-pr

  # Print the line without writing it
  cvgen fetch-pr --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runFetchPR(cmd.Context(), opts, env, generate.New(env))
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the fragment line without writing it")

	return cmd
}

type fetchResult struct {
	Line string `json:"line"`
	Path string `json:"path,omitempty"`
}

func runFetchPR(ctx context.Context, opts *fetchOptions, env *app.Env, g *generate.Generator) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(env.Stdout)

	result := fetchResult{}
	if opts.dryRun {
		result.Line = g.Snippets.Snippet(ctx)
	} else {
		path, line, err := g.LatestPR(ctx)
		if err != nil {
			return fmt.Errorf("failed to update latest PR: %w", err)
		}
		result.Path = path
		result.Line = line
	}

	switch renderer.Format() {
	case view.FormatJSON:
		return renderer.RenderJSON(result)
	default:
		if opts.dryRun {
			renderer.RenderText(result.Line)
			return nil
		}
		renderer.Success("Updated " + result.Path)
	}
	return nil
}
