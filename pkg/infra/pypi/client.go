// Package pypi queries the PyPI JSON metadata API for the latest stable
// version of a package.
package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/hngkr/releases-mcp/pkg/domain/interfaces"
	"github.com/hngkr/releases-mcp/pkg/domain/model"
	"github.com/hngkr/releases-mcp/pkg/domain/types"
)

const (
	defaultBaseURL = "https://pypi.org/pypi"
	requestTimeout = 10 * time.Second
)

var normalizeRE = regexp.MustCompile(`[-_.]+`)

type client struct {
	http    *http.Client
	baseURL string
}

// Option is a functional option for the PyPI client
type Option func(*client)

// WithBaseURL overrides the API endpoint, used by tests
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = hc
	}
}

// NewClient creates a PyPI version client
func NewClient(opts ...Option) interfaces.PyPIClient {
	c := &client{
		http:    &http.Client{Timeout: requestTimeout},
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiResponse struct {
	Info struct {
		Name     string `json:"name"`
		Version  string `json:"version"`
		Summary  string `json:"summary"`
		HomePage string `json:"home_page"`
	} `json:"info"`
	Releases map[string][]releaseFile `json:"releases"`
}

type releaseFile struct {
	Yanked bool `json:"yanked"`
}

// LatestVersion fetches package metadata and returns the highest stable
// version from the full release list. The info.version field is ignored as
// a candidate source since it may itself be a pre-release.
func (c *client) LatestVersion(ctx context.Context, pkg string) (*model.PyPIVersionInfo, error) {
	pkg = NormalizeName(pkg)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/json", c.baseURL, pkg), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build PyPI request",
			goerr.T(types.TagTransport), goerr.V("package", pkg))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "PyPI request failed",
			goerr.T(types.TagTransport), goerr.V("package", pkg))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, goerr.New("package not found",
			goerr.T(types.TagNotFound), goerr.V("package", pkg))
	case resp.StatusCode != http.StatusOK:
		return nil, goerr.New("unexpected PyPI response status",
			goerr.T(types.TagTransport), goerr.V("package", pkg), goerr.V("status", resp.StatusCode))
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, goerr.Wrap(err, "malformed PyPI response",
			goerr.T(types.TagParse), goerr.V("package", pkg))
	}

	best := latestStable(data.Releases)
	if best == nil {
		return nil, goerr.New("no stable version found",
			goerr.T(types.TagNotFound), goerr.V("package", pkg))
	}

	name := data.Info.Name
	if name == "" {
		name = pkg
	}
	return &model.PyPIVersionInfo{
		Name:       name,
		Version:    best.Original,
		Summary:    data.Info.Summary,
		Homepage:   data.Info.HomePage,
		ProjectURL: fmt.Sprintf("https://pypi.org/project/%s/%s/", NormalizeName(name), best.Original),
	}, nil
}

// latestStable filters the release list to stable, non-yanked versions and
// returns the maximum under numeric component-wise precedence.
func latestStable(releases map[string][]releaseFile) *model.Version {
	var best *model.Version
	for verStr, files := range releases {
		ver, ok := model.ParseVersion(verStr)
		if !ok || !ver.IsStable() {
			continue
		}
		if yanked(files) {
			continue
		}
		if best == nil || model.Compare(ver, best) > 0 {
			best = ver
		}
	}
	return best
}

// yanked reports whether a release is unavailable: no files at all, or
// every file withdrawn.
func yanked(files []releaseFile) bool {
	if len(files) == 0 {
		return true
	}
	for _, f := range files {
		if !f.Yanked {
			return false
		}
	}
	return true
}

// NormalizeName normalizes a package name per PEP 503: lowercase with runs
// of ".", "-" and "_" collapsed to a single hyphen.
func NormalizeName(pkg string) string {
	return normalizeRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(pkg)), "-")
}
