package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for cvgen.

To load completions in your current shell session:

  cvgen completion fish | source

To load completions for every new session:

  cvgen completion fish > ~/.config/fish/completions/cvgen.fish`,
		Example: `  # Load in current session
  cvgen completion fish | source

  # Install permanently
  cvgen completion fish > ~/.config/fish/completions/cvgen.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
