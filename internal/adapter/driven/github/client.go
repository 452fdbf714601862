// Package github implements the EvidenceSource port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/tbrowse/themescan/internal/domain/model"
	"github.com/tbrowse/themescan/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EvidenceSource = (*Client)(nil)

// Client implements the driven.EvidenceSource port using the go-github
// library. It retrieves the two raw evidence kinds the classifier consumes:
// free text (description plus README) and the repository file listing.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub evidence client with the following
// transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
//
// token may be empty for anonymous access at the lower unauthenticated rate
// limit.
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	client := gh.NewClient(rateLimitClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchText retrieves the repository description and README body as one
// free-text blob. A repository without a README still yields its
// description; any API failure surfaces as a *driven.FetchError.
func (c *Client) FetchText(ctx context.Context, repo string) (string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return "", &driven.FetchError{Repo: repo, Op: "text", Err: err}
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", &driven.FetchError{Repo: repo, Op: "text", Err: err}
	}
	logRateLimit(resp, "repos.get", repo)

	var parts []string
	if d := repository.GetDescription(); d != "" {
		parts = append(parts, d)
	}

	readme, resp, err := c.gh.Repositories.GetReadme(ctx, owner, name, nil)
	switch {
	case isNotFound(err):
		// No README is valid evidence: the description alone is the text.
	case err != nil:
		return "", &driven.FetchError{Repo: repo, Op: "text", Err: err}
	default:
		logRateLimit(resp, "repos.readme", repo)
		body, err := readme.GetContent()
		if err != nil {
			return "", &driven.FetchError{Repo: repo, Op: "text", Err: fmt.Errorf("decoding readme: %w", err)}
		}
		parts = append(parts, body)
	}

	return strings.Join(parts, "\n\n"), nil
}

// FetchTree retrieves the recursive file listing of the repository's default
// branch.
func (c *Client) FetchTree(ctx context.Context, repo string) ([]model.TreeItem, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, &driven.FetchError{Repo: repo, Op: "tree", Err: err}
	}

	repository, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, &driven.FetchError{Repo: repo, Op: "tree", Err: err}
	}
	logRateLimit(resp, "repos.get", repo)

	ref := repository.GetDefaultBranch()
	if ref == "" {
		ref = "HEAD"
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, name, ref, true)
	if err != nil {
		return nil, &driven.FetchError{Repo: repo, Op: "tree", Err: err}
	}
	logRateLimit(resp, "git.trees", repo)

	items := make([]model.TreeItem, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		items = append(items, model.TreeItem{
			Path: entry.GetPath(),
			Kind: entry.GetType(),
		})
	}

	return items, nil
}

// isNotFound reports whether err is a GitHub 404 response.
func isNotFound(err error) bool {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// logRateLimit logs the remaining API budget and warns when it runs low.
func logRateLimit(resp *gh.Response, endpoint, repo string) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"repo", repo,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

// splitRepo splits an "owner/name" identity.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/name", fullName)
	}
	return parts[0], parts[1], nil
}
