// Package contrib produces the "latest merged pull request" LaTeX line.
package contrib

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/open-cli-collective/cvgen/api"
	"github.com/open-cli-collective/cvgen/internal/config"
	"github.com/open-cli-collective/cvgen/pkg/latex"
)

// PRSource looks up a user's most recent merged pull request.
type PRSource interface {
	LatestMergedPR(ctx context.Context, username string) (*api.Issue, error)
}

// Fetcher builds the snippet. Every failure degrades to Fallback.
type Fetcher struct {
	Source   PRSource
	Username string
	Fallback string
	Timeout  time.Duration
	Log      *zap.SugaredLogger
}

// New returns a Fetcher backed by the GitHub API described in cfg.
func New(cfg *config.Config, log *zap.SugaredLogger) *Fetcher {
	timeout := cfg.GitHub.Timeout.Duration
	return &Fetcher{
		Source:   api.NewClient(cfg.GitHub.APIBase, cfg.GitHub.Token, timeout),
		Username: cfg.GitHub.Username,
		Fallback: cfg.Fallbacks.LatestPR,
		Timeout:  timeout,
		Log:      log,
	}
}

// Snippet returns the LaTeX line for the latest merged pull request, or the
// fallback line when it cannot be determined. It never fails.
func (f *Fetcher) Snippet(ctx context.Context) string {
	if f.Username == "" || f.Username == config.PlaceholderUsername {
		f.Log.Warn("github.username is not configured; using fallback text")
		return f.Fallback
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	f.Log.Infow("Fetching latest PR", "user", f.Username)
	pr, err := f.Source.LatestMergedPR(ctx, f.Username)
	if err != nil {
		f.Log.Warnw("Could not fetch latest PR; using fallback text", "error", err)
		return f.Fallback
	}

	line, err := FormatSnippet(pr)
	if err != nil {
		f.Log.Warnw("Unusable PR data; using fallback text", "error", err)
		return f.Fallback
	}

	f.Log.Infow("Found PR", "repo", pr.Repository(), "title", pr.Title)
	return line
}

// FormatSnippet renders pr as a résumé item. The title is escaped for LaTeX.
func FormatSnippet(pr *api.Issue) (string, error) {
	if pr == nil {
		return "", fmt.Errorf("no pull request")
	}
	repo := pr.Repository()
	switch {
	case !pr.IsPullRequest():
		return "", fmt.Errorf("search result #%d is an issue, not a pull request", pr.Number)
	case pr.Title == "":
		return "", fmt.Errorf("pull request has no title")
	case pr.HTMLURL == "":
		return "", fmt.Errorf("pull request has no html_url")
	case repo == "":
		return "", fmt.Errorf("pull request has no usable repository_url %q", pr.RepositoryURL)
	}

	return fmt.Sprintf(`\item \textbf{Active Contributor:} Latest merged PR — \href{%s}{%s} (\textit{%s})`,
		pr.HTMLURL, repo, latex.EscapeText(pr.Title)), nil
}
