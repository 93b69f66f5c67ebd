// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/config"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage cvgen configuration",
		Long:        `Commands for viewing, testing, and clearing cvgen configuration.`,
		Annotations: map[string]string{app.SkipEnvAnnotation: "true"},
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// configPath returns the --config flag value, or the default path for the
// --root project.
func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}

	dir, _ := cmd.Flags().GetString("root")
	root, err := app.ResolveRoot(dir)
	if err != nil {
		return "", err
	}
	return config.DefaultConfigPath(root), nil
}
