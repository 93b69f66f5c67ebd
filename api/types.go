package api

import (
	"fmt"
	"strings"
)

// Issue is an item of the issue search API. Pull requests are issues with
// a pull_request member.
type Issue struct {
	Number        int             `json:"number"`
	Title         string          `json:"title"`
	State         string          `json:"state"`
	HTMLURL       string          `json:"html_url"`
	RepositoryURL string          `json:"repository_url"`
	User          User            `json:"user"`
	PullRequest   *PullRequestRef `json:"pull_request,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
	ClosedAt      string          `json:"closed_at,omitempty"`
}

// Repository returns the owner/repo part of RepositoryURL, or "" when the
// URL is not an API repository URL.
func (i *Issue) Repository() string {
	_, repo, ok := strings.Cut(i.RepositoryURL, "/repos/")
	if !ok {
		return ""
	}
	return strings.TrimSuffix(repo, "/")
}

// IsPullRequest reports whether the issue is a pull request.
func (i *Issue) IsPullRequest() bool {
	return i.PullRequest != nil
}

// PullRequestRef links an issue to its pull request.
type PullRequestRef struct {
	URL      string `json:"url"`
	HTMLURL  string `json:"html_url"`
	MergedAt string `json:"merged_at,omitempty"`
}

// User is a GitHub account.
type User struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// SearchIssuesResponse is the body of GET /search/issues.
type SearchIssuesResponse struct {
	TotalCount        int     `json:"total_count"`
	IncompleteResults bool    `json:"incomplete_results"`
	Items             []Issue `json:"items"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode       int    `json:"-"`
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

func (e *ErrorResponse) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}
