package issues

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog"
)

var _ Source = (*GitHubSource)(nil)

// GitHubSource lists a repository's issues live from the GitHub REST API.
type GitHubSource struct {
	gh     *gh.Client
	repo   string
	logger zerolog.Logger
}

// NewGitHubSource builds the client on an ETag cache and the secondary rate
// limit middleware. An empty token makes unauthenticated requests.
func NewGitHubSource(repo, token string, logger zerolog.Logger) *GitHubSource {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &GitHubSource{gh: client, repo: repo, logger: logger}
}

// NewGitHubSourceWithHTTPClient points the source at baseURL, for tests.
func NewGitHubSourceWithHTTPClient(httpClient *http.Client, baseURL, repo string, logger zerolog.Logger) (*GitHubSource, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &GitHubSource{gh: client, repo: repo, logger: logger}, nil
}

// List returns every issue in the repository, open and closed. Pull requests
// are skipped.
func (s *GitHubSource) List(ctx context.Context) ([]Issue, error) {
	owner, repo, err := splitRepo(s.repo)
	if err != nil {
		return nil, err
	}

	opts := &gh.IssueListByRepoOptions{
		State:     "all",
		Sort:      "created",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	all := []Issue{}
	for {
		page, resp, err := s.gh.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issues for %s (page %d): %w", s.repo, opts.ListOptions.Page, err)
		}

		s.logRateLimit(resp, opts.ListOptions.Page, len(page))

		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, mapIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return all, nil
}

func (s *GitHubSource) logRateLimit(resp *gh.Response, page, count int) {
	if resp == nil {
		return
	}

	s.logger.Debug().
		Str("repo", s.repo).
		Int("page", page).
		Int("count", count).
		Int("rate_remaining", resp.Rate.Remaining).
		Int("rate_limit", resp.Rate.Limit).
		Msg("github api call")

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		s.logger.Warn().
			Int("remaining", resp.Rate.Remaining).
			Dur("reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second)).
			Msg("github rate limit low")
	}
}

func mapIssue(issue *gh.Issue) Issue {
	out := Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     strings.ToUpper(issue.GetState()),
		Author:    Author{Login: issue.GetUser().GetLogin()},
		CreatedAt: issue.GetCreatedAt().Time,
	}
	for _, l := range issue.Labels {
		out.Labels = append(out.Labels, Label{Name: l.GetName()})
	}
	if issue.ClosedAt != nil {
		closed := issue.GetClosedAt().Time
		out.ClosedAt = &closed
	}
	return out
}

func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
