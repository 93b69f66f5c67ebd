// Package init provides the init command for cvgen.
package init

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cvgen/api"
	"github.com/open-cli-collective/cvgen/internal/app"
	"github.com/open-cli-collective/cvgen/internal/config"
	"github.com/open-cli-collective/cvgen/internal/validate"
)

type initOptions struct {
	configPath string
	username   string
	noVerify   bool

	// confirm asks whether to overwrite an existing file.
	confirm func(path string) (bool, error)
	// prompt fills cfg interactively.
	prompt func(cfg *config.Config) error
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{
		confirm: confirmOverwrite,
		prompt:  promptConfig,
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize cvgen configuration",
		Long: `Initialize cvgen for a résumé repository.

This command will guide you through setting the personal details shown in
the page headers and the GitHub user whose merged pull requests feed the
latest-PR fragment. The configuration is saved to cvgen.yml in the
project root unless --config is given.

A GitHub token is optional; without one the search API is rate limited.
Set it with the GITHUB_TOKEN environment variable rather than in the file.`,
		Example: `  # Interactive setup
  cvgen init

  # Pre-populate the GitHub user
  cvgen init --username octocat`,
		Annotations: map[string]string{app.SkipEnvAnnotation: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			if opts.configPath == "" {
				dir, _ := cmd.Flags().GetString("root")
				root, err := app.ResolveRoot(dir)
				if err != nil {
					return err
				}
				opts.configPath = filepath.Join(root, config.ProjectFile)
			}
			return runInit(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.username, "username", "", "GitHub username")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip GitHub API verification")

	return cmd
}

func runInit(ctx context.Context, w io.Writer, opts *initOptions) error {
	configPath := opts.configPath

	// Existing settings, including the résumé sections, are kept as the
	// starting point.
	cfg := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := opts.confirm(configPath)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
		if existing, err := config.Load(configPath); err == nil {
			cfg = existing
		}
	}

	if opts.username != "" {
		cfg.GitHub.Username = opts.username
	}

	if err := opts.prompt(cfg); err != nil {
		return err
	}

	// Verify connection unless skipped
	if !opts.noVerify && cfg.GitHub.Username != "" && cfg.GitHub.Username != config.PlaceholderUsername {
		fmt.Fprint(w, "Verifying GitHub access... ")
		if err := verifyConnection(ctx, cfg, os.Getenv("GITHUB_TOKEN")); err != nil {
			fmt.Fprintln(w, "failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Fprintln(w, "success!")
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)
	for _, problem := range cfg.Validate() {
		fmt.Fprintf(w, "! %s\n", problem)
	}
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  cvgen fetch-pr")
	fmt.Fprintln(w, "  cvgen generate all")

	return nil
}

func confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewConfirm().
		Title("Configuration already exists").
		Description(fmt.Sprintf("Overwrite %s?", path)).
		Value(&overwrite).
		Run()
	return overwrite, err
}

func promptConfig(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&cfg.Personal.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Title").
				Placeholder("Backend Developer").
				Value(&cfg.Personal.Title),

			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&cfg.Personal.Email).
				Validate(optional(validate.Email, "not a valid email address")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("LinkedIn URL (optional)").
				Value(&cfg.Personal.LinkedIn).
				Validate(optional(validate.URL, "not a valid URL")),

			huh.NewInput().
				Title("GitHub profile URL (optional)").
				Value(&cfg.Personal.GitHub).
				Validate(optional(validate.URL, "not a valid URL")),

			huh.NewInput().
				Title("Website (optional)").
				Value(&cfg.Personal.Website).
				Validate(optional(validate.URL, "not a valid URL")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub username").
				Description("Author of the merged pull requests shown in the open source section").
				Placeholder(config.PlaceholderUsername).
				Value(&cfg.GitHub.Username),
		),
	)

	return form.Run()
}

// optional wraps a validator so that empty input passes.
func optional(valid func(string) bool, msg string) func(string) error {
	return func(s string) error {
		if s != "" && !valid(s) {
			return errors.New(msg)
		}
		return nil
	}
}

func verifyConnection(ctx context.Context, cfg *config.Config, token string) error {
	if token == "" {
		token = cfg.GitHub.Token
	}
	client := api.NewClient(cfg.GitHub.APIBase, token, cfg.GitHub.Timeout.Duration)

	_, err := client.LatestMergedPR(ctx, cfg.GitHub.Username)
	if err == nil || errors.Is(err, api.ErrNoResults) {
		return nil
	}

	var apiErr *api.ErrorResponse
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("authentication failed - check your GitHub token")
		case http.StatusForbidden:
			return fmt.Errorf("access denied - the search API may be rate limited")
		case http.StatusUnprocessableEntity:
			return fmt.Errorf("GitHub user %q not found", cfg.GitHub.Username)
		default:
			return fmt.Errorf("unexpected status code: %d", apiErr.StatusCode)
		}
	}
	return err
}
