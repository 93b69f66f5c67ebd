package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrNoResults is returned when a search matches nothing.
var ErrNoResults = errors.New("no results")

// SearchOptions contains options for the issue search API.
type SearchOptions struct {
	Query   string // Search qualifiers, e.g. "author:octocat type:pr"
	Sort    string // created, updated, comments
	Order   string // asc or desc
	PerPage int    // Max results per page (GitHub caps at 100)
}

// SearchIssues searches issues and pull requests.
// Uses GET /search/issues
func (c *Client) SearchIssues(ctx context.Context, opts *SearchOptions) (*SearchIssuesResponse, error) {
	if opts == nil || strings.TrimSpace(opts.Query) == "" {
		return nil, fmt.Errorf("search requires a query")
	}

	params := url.Values{}
	params.Set("q", opts.Query)
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.Order != "" {
		params.Set("order", opts.Order)
	}
	if opts.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(opts.PerPage))
	}

	body, err := c.Get(ctx, "/search/issues?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result SearchIssuesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return &result, nil
}

// MergedPRQuery returns the search qualifiers for a user's merged pull requests.
func MergedPRQuery(username string) string {
	return fmt.Sprintf("author:%s type:pr is:merged", username)
}

// LatestMergedPR returns the most recently updated merged pull request
// authored by username.
func (c *Client) LatestMergedPR(ctx context.Context, username string) (*Issue, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	result, err := c.SearchIssues(ctx, &SearchOptions{
		Query:   MergedPRQuery(username),
		Sort:    "updated",
		Order:   "desc",
		PerPage: 1,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Items) == 0 {
		return nil, fmt.Errorf("merged pull requests by %s: %w", username, ErrNoResults)
	}

	return &result.Items[0], nil
}
