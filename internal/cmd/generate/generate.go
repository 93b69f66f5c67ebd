// Package generate provides the generate commands.
package generate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/internal/app"
	gen "github.com/open-cli-collective/cvgen/internal/generate"
	"github.com/open-cli-collective/cvgen/internal/view"
)

type generateOptions struct {
	output  string
	noColor bool
}

// target is one output a generate subcommand writes.
type target struct {
	use   string
	short string
	run   func(g *gen.Generator, ctx context.Context) ([]string, error)
}

var targets = []target{
	{"html", "Generate the HTML web page", single((*gen.Generator).HTML)},
	{"markdown", "Generate the Markdown README", single((*gen.Generator).Markdown)},
	{"json", "Generate the JSON Resume document", single((*gen.Generator).JSON)},
	{"all", "Generate the HTML, Markdown and JSON outputs", (*gen.Generator).All},
}

func single(fn func(*gen.Generator, context.Context) (string, error)) func(*gen.Generator, context.Context) ([]string, error) {
	return func(g *gen.Generator, ctx context.Context) ([]string, error) {
		path, err := fn(g, ctx)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
}

// NewCmdGenerate creates the generate command.
func NewCmdGenerate() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate résumé outputs from the LaTeX sections",
		Long: `Render the LaTeX section files into the configured outputs.

Missing or empty section files are logged and rendered as empty sections;
only a failed write makes the command fail.`,
		Example: `  # Regenerate everything
  cvgen generate all

  # Only the web page, from another directory
  cvgen generate html --root ~/resume`,
	}

	for _, t := range targets {
		cmd.AddCommand(newCmdTarget(t))
	}

	return cmd
}

func newCmdTarget(t target) *cobra.Command {
	return &cobra.Command{
		Use:   t.use,
		Short: t.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			opts := &generateOptions{}
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runGenerate(cmd.Context(), opts, env, gen.New(env), t.run)
		},
	}
}

type generatedFile struct {
	Path string `json:"path"`
}

func runGenerate(ctx context.Context, opts *generateOptions, env *app.Env, g *gen.Generator,
	run func(*gen.Generator, context.Context) ([]string, error)) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(env.Stdout)

	paths, err := run(g, ctx)
	if err != nil {
		return fmt.Errorf("failed to generate output: %w", err)
	}

	switch renderer.Format() {
	case view.FormatJSON:
		files := make([]generatedFile, 0, len(paths))
		for _, p := range paths {
			files = append(files, generatedFile{Path: p})
		}
		return renderer.RenderJSON(files)
	case view.FormatPlain:
		for _, p := range paths {
			renderer.RenderText(p)
		}
	default:
		for _, p := range paths {
			renderer.Success("Generated " + p)
		}
	}
	return nil
}
