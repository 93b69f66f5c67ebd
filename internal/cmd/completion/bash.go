package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for cvgen.

To load completions in your current shell session:

  source <(cvgen completion bash)

To load completions for every new session:

  # Linux
  cvgen completion bash > /etc/bash_completion.d/cvgen

  # macOS (requires bash-completion)
  cvgen completion bash > $(brew --prefix)/etc/bash_completion.d/cvgen`,
		Example: `  # Load in current session
  source <(cvgen completion bash)

  # Install permanently (Linux)
  cvgen completion bash | sudo tee /etc/bash_completion.d/cvgen > /dev/null

  # Install permanently (macOS with Homebrew)
  cvgen completion bash > $(brew --prefix)/etc/bash_completion.d/cvgen`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
