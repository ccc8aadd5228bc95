package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hngkr/releases-mcp/pkg/domain/interfaces"
	"github.com/hngkr/releases-mcp/pkg/domain/model"
	"github.com/hngkr/releases-mcp/pkg/domain/types"
)

const requestTimeout = 10 * time.Second

type client struct {
	gh *github.Client
}

// Option is a functional option for the GitHub client
type Option func(*config)

type config struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// WithToken sets a bearer token. An empty token is valid and simply means
// unauthenticated requests with the lower rate limit.
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithBaseURL overrides the API endpoint, used by tests
func WithBaseURL(u string) Option {
	return func(c *config) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// NewClient creates a GitHub release client
func NewClient(opts ...Option) (interfaces.GitHubClient, error) {
	cfg := &config{
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	gh := github.NewClient(cfg.httpClient)
	if cfg.token != "" {
		gh = gh.WithAuthToken(cfg.token)
	}
	if cfg.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub base URL", goerr.T(types.TagConfig))
		}
		gh.BaseURL = u
	}

	return &client{gh: gh}, nil
}

// LatestRelease lists the repository releases and picks the highest stable
// version among entries that are neither draft nor prerelease. When the
// listing has no qualifying entry, the releases/latest endpoint gets a
// second chance before reporting not-found.
func (c *client) LatestRelease(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
	releases, resp, err := c.gh.Repositories.ListReleases(ctx, owner, repo, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, classifyError(err, resp, owner, repo)
	}

	var (
		best    *github.RepositoryRelease
		bestVer *model.Version
	)
	for _, rel := range releases {
		if rel.GetDraft() || rel.GetPrerelease() {
			continue
		}
		tag := rel.GetTagName()
		if !model.IsStableTag(tag) {
			continue
		}
		ver, ok := model.ParseVersion(tag)
		if !ok {
			// Unparseable tags cannot be ordered reliably, skip them
			continue
		}
		if bestVer == nil || model.Compare(ver, bestVer) > 0 {
			best, bestVer = rel, ver
		}
	}
	if best != nil {
		return releaseInfo(owner, repo, best), nil
	}

	if rel, _, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo); err == nil {
		if !rel.GetDraft() && !rel.GetPrerelease() && model.IsStableTag(rel.GetTagName()) {
			return releaseInfo(owner, repo, rel), nil
		}
	}

	return nil, goerr.New("no stable release found",
		goerr.T(types.TagNotFound), goerr.V("owner", owner), goerr.V("repo", repo))
}

func releaseInfo(owner, repo string, rel *github.RepositoryRelease) *model.ReleaseInfo {
	return &model.ReleaseInfo{
		Owner:       owner,
		Repo:        repo,
		TagName:     rel.GetTagName(),
		Version:     strings.TrimPrefix(rel.GetTagName(), "v"),
		ReleaseName: rel.GetName(),
		PublishedAt: rel.GetPublishedAt().Time,
		URL:         rel.GetHTMLURL(),
	}
}

// classifyError maps transport failures onto the error taxonomy. A 404 is
// the expected trigger for the PyPI fallback, not a fault.
func classifyError(err error, resp *github.Response, owner, repo string) error {
	opts := []goerr.Option{goerr.V("owner", owner), goerr.V("repo", repo)}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return goerr.Wrap(err, "GitHub API rate limit exceeded",
			append(opts, goerr.T(types.TagRateLimited))...)
	}

	if resp != nil {
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return goerr.Wrap(err, "repository not found",
				append(opts, goerr.T(types.TagNotFound))...)
		case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
			return goerr.Wrap(err, "GitHub API rate limit exceeded",
				append(opts, goerr.T(types.TagRateLimited))...)
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return goerr.Wrap(err, "malformed GitHub API response",
			append(opts, goerr.T(types.TagParse))...)
	}

	return goerr.Wrap(err, "GitHub API request failed",
		append(opts, goerr.T(types.TagTransport))...)
}
