package configcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/api"
	"github.com/open-cli-collective/cvgen/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test connectivity with the GitHub API",
		Long: `Test that cvgen can search the GitHub API for the configured user's
merged pull requests with the current configuration.`,
		Example: `  # Test connection
  cvgen config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadWithEnv(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w (run 'cvgen init' to configure)", err)
			}
			return runTest(cmd.Context(), cmd.OutOrStdout(), cfg, noColor)
		},
	}

	return cmd
}

func runTest(ctx context.Context, w io.Writer, cfg *config.Config, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	if cfg.GitHub.Username == "" || cfg.GitHub.Username == config.PlaceholderUsername {
		return fmt.Errorf("github.username is not set (run 'cvgen init' to configure)")
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintf(w, "Testing connection to %s...\n", cfg.GitHub.APIBase)

	client := api.NewClient(cfg.GitHub.APIBase, cfg.GitHub.Token, cfg.GitHub.Timeout.Duration)
	pr, err := client.LatestMergedPR(ctx, cfg.GitHub.Username)

	var apiErr *api.ErrorResponse
	switch {
	case err == nil, errors.Is(err, api.ErrNoResults):
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized:
		_, _ = red.Fprintln(w, "✗ Authentication failed: 401 Unauthorized")
		fmt.Fprintln(w, "\nCheck your token with: cvgen config show")
		return fmt.Errorf("authentication failed")
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden:
		_, _ = red.Fprintln(w, "✗ Access denied: 403 Forbidden")
		fmt.Fprintln(w, "\nThe search API may be rate limited; set a token to raise the limit.")
		return fmt.Errorf("access denied")
	case errors.As(err, &apiErr):
		_, _ = red.Fprintf(w, "✗ Unexpected response: %d\n", apiErr.StatusCode)
		return fmt.Errorf("unexpected status code: %d", apiErr.StatusCode)
	default:
		_, _ = red.Fprintln(w, "✗ Connection failed:", err)
		fmt.Fprintln(w, "\nCheck the API base with: cvgen config show")
		return fmt.Errorf("connection failed: %w", err)
	}

	_, _ = green.Fprintln(w, "✓ API access verified")
	if pr == nil {
		fmt.Fprintf(w, "\nNo merged pull requests found for %s\n", cfg.GitHub.Username)
		return nil
	}
	fmt.Fprintf(w, "\nLatest merged PR: %s (%s)\n", pr.Title, pr.Repository())
	return nil
}
