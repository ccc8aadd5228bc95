package github_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/hngkr/releases-mcp/pkg/domain/interfaces"
	"github.com/hngkr/releases-mcp/pkg/domain/types"
	githubinfra "github.com/hngkr/releases-mcp/pkg/infra/github"
)

func newTestClient(t *testing.T, mux *http.ServeMux) (interfaces.GitHubClient, func()) {
	t.Helper()
	srv := httptest.NewServer(mux)

	client, err := githubinfra.NewClient(
		githubinfra.WithBaseURL(srv.URL),
		githubinfra.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		srv.Close()
		t.Fatalf("failed to create client: %v", err)
	}
	return client, srv.Close
}

func TestLatestRelease_PicksHighestStableVersion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/hashicorp/nomad/releases", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"tag_name": "v2.9.0", "name": "2.9.0", "draft": false, "prerelease": false,
			 "published_at": "2024-01-10T10:00:00Z", "html_url": "https://example.com/v2.9.0"},
			{"tag_name": "v3.0.0-rc1", "name": "3.0.0 RC1", "draft": false, "prerelease": true,
			 "published_at": "2024-03-01T10:00:00Z", "html_url": "https://example.com/v3.0.0-rc1"},
			{"tag_name": "v9.9.9", "name": "draft", "draft": true, "prerelease": false,
			 "published_at": "2024-04-01T10:00:00Z", "html_url": "https://example.com/v9.9.9"},
			{"tag_name": "v2.10.0", "name": "2.10.0", "draft": false, "prerelease": false,
			 "published_at": "2024-02-20T10:00:00Z", "html_url": "https://example.com/v2.10.0"}
		]`)
	})

	client, done := newTestClient(t, mux)
	defer done()

	rel, err := client.LatestRelease(context.Background(), "hashicorp", "nomad")
	gt.NoError(t, err)
	// Numeric precedence: 2.10.0 beats 2.9.0; draft and prerelease never win
	gt.Value(t, rel.TagName).Equal("v2.10.0")
	gt.Value(t, rel.Version).Equal("2.10.0")
	gt.Value(t, rel.URL).Equal("https://example.com/v2.10.0")
	gt.Value(t, rel.Source()).Equal("github")
}

func TestLatestRelease_FallsBackToLatestEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/repos/owner/repo/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name": "v1.2.3", "name": "1.2.3", "draft": false, "prerelease": false,
			"published_at": "2024-05-01T10:00:00Z", "html_url": "https://example.com/v1.2.3"}`)
	})

	client, done := newTestClient(t, mux)
	defer done()

	rel, err := client.LatestRelease(context.Background(), "owner", "repo")
	gt.NoError(t, err)
	gt.Value(t, rel.TagName).Equal("v1.2.3")
}

func TestLatestRelease_OnlyUnstableReleases(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"tag_name": "v1.0.0-beta.1", "name": "beta", "draft": false, "prerelease": false,
			 "published_at": "2024-01-01T10:00:00Z", "html_url": "https://example.com/beta"}
		]`)
	})
	mux.HandleFunc("/repos/owner/repo/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client, done := newTestClient(t, mux)
	defer done()

	_, err := client.LatestRelease(context.Background(), "owner", "repo")
	gt.Error(t, err)
	if !goerr.HasTag(err, types.TagNotFound) {
		t.Errorf("expected not-found tag, got: %v", err)
	}
}

func TestLatestRelease_RepositoryNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/fake-owner/fake-repo/releases", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client, done := newTestClient(t, mux)
	defer done()

	_, err := client.LatestRelease(context.Background(), "fake-owner", "fake-repo")
	gt.Error(t, err)
	if !goerr.HasTag(err, types.TagNotFound) {
		t.Errorf("expected not-found tag, got: %v", err)
	}
}

func TestLatestRelease_RateLimited(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "API rate limit exceeded"}`, http.StatusForbidden)
	})

	client, done := newTestClient(t, mux)
	defer done()

	_, err := client.LatestRelease(context.Background(), "owner", "repo")
	gt.Error(t, err)
	if !goerr.HasTag(err, types.TagRateLimited) {
		t.Errorf("expected rate-limited tag, got: %v", err)
	}
}

func TestLatestRelease_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	client, done := newTestClient(t, mux)
	defer done()

	_, err := client.LatestRelease(context.Background(), "owner", "repo")
	gt.Error(t, err)
	if !goerr.HasTag(err, types.TagTransport) {
		t.Errorf("expected transport tag, got: %v", err)
	}
}
