// Package entries provides the entries command.
package entries

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/generate"
	"github.com/open-cli-collective/cvgen/internal/resume"
	"github.com/open-cli-collective/cvgen/internal/view"
	"github.com/open-cli-collective/cvgen/pkg/latex"
	"github.com/open-cli-collective/cvgen/pkg/render"
)

type entriesOptions struct {
	file    string
	flatten bool
	output  string
	noColor bool
}

// NewCmdEntries creates the entries command.
func NewCmdEntries() *cobra.Command {
	opts := &entriesOptions{}

	cmd := &cobra.Command{
		Use:   "entries [file]",
		Short: "List the \\cventry entries of a section file",
		Long: `Parse a LaTeX section file and list its \cventry entries.

A bare file name is looked up in the sections directory; paths with a
directory component resolve against the project root. Defaults to the
projects section.`,
		Example: `  # List projects
  cvgen entries

  # Entries as JSON
  cvgen entries projects.tex -o json

  # Print the section flattened to plain text
  cvgen entries --flatten`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			opts.file = generate.ProjectsFile
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runEntries(opts, env)
		},
	}

	cmd.Flags().BoolVar(&opts.flatten, "flatten", false, "print the section flattened to plain text")

	return cmd
}

func runEntries(opts *entriesOptions, env *app.Env) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	path := env.Path(opts.file)
	if filepath.Base(opts.file) == opts.file {
		path = env.SectionPath(opts.file)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read section file: %w", err)
	}
	text := string(data)

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(env.Stdout)

	if opts.flatten {
		renderer.RenderText(render.Flatten().Section(text).Text)
		return nil
	}

	scan := latex.ScanEntries(latex.StripComments(text))
	for _, w := range scan.Warnings {
		env.Log.Warnw("Malformed entry skipped", "file", opts.file, "detail", w)
	}

	if renderer.Format() == view.FormatJSON {
		entries := scan.Entries
		if entries == nil {
			entries = []latex.Entry{}
		}
		return renderer.RenderJSON(entries)
	}

	if len(scan.Entries) == 0 {
		renderer.RenderText("No entries found.")
		return nil
	}

	headers := []string{"TITLE", "TECH", "LINK", "HIGHLIGHTS"}
	var rows [][]string
	for _, e := range scan.Entries {
		link := e.LinkURL
		if link == "" {
			link = latex.ToPlain(e.LinkText)
		}
		rows = append(rows, []string{
			latex.ToPlain(e.Title),
			view.Truncate(latex.ToPlain(e.Tech), 40),
			link,
			strconv.Itoa(len(resume.Highlights(e.Content))),
		})
	}

	renderer.RenderTable(headers, rows)
	return nil
}
