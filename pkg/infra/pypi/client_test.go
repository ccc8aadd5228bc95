package pypi_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/hngkr/releases-mcp/pkg/domain/types"
	"github.com/hngkr/releases-mcp/pkg/infra/pypi"
)

func TestLatestVersion_FiltersPreReleases(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/django/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"info": {
				"name": "Django",
				"version": "6.1.0a1",
				"summary": "The Web framework for perfectionists with deadlines.",
				"home_page": "https://www.djangoproject.com/"
			},
			"releases": {
				"6.0.1": [{"yanked": false}],
				"6.1.0a1": [{"yanked": false}],
				"6.0.0": [{"yanked": false}]
			}
		}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := pypi.NewClient(pypi.WithBaseURL(srv.URL))

	// The alpha is excluded even though info.version points at it;
	// 6.0.1 is the numeric maximum of the remaining stable set
	info, err := client.LatestVersion(context.Background(), "django")
	gt.NoError(t, err)
	gt.Value(t, info.Version).Equal("6.0.1")
	gt.Value(t, info.Name).Equal("Django")
	gt.Value(t, info.Source()).Equal("pypi")
	gt.String(t, info.ProjectURL).Contains("https://pypi.org/project/django/6.0.1/")
}

func TestLatestVersion_NumericOrdering(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/demo/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"info": {"name": "demo", "version": "2.9.0"},
			"releases": {
				"2.9.0": [{"yanked": false}],
				"2.10.0": [{"yanked": false}]
			}
		}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := pypi.NewClient(pypi.WithBaseURL(srv.URL))

	info, err := client.LatestVersion(context.Background(), "demo")
	gt.NoError(t, err)
	gt.Value(t, info.Version).Equal("2.10.0")
}

func TestLatestVersion_SkipsYankedAndMarked(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/demo/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"info": {"name": "demo", "version": "3.0.0"},
			"releases": {
				"3.0.0": [{"yanked": true}, {"yanked": true}],
				"2.5.0.post1": [{"yanked": false}],
				"2.5.0.dev2": [{"yanked": false}],
				"2.4.0+local": [{"yanked": false}],
				"2.3.0": [{"yanked": true}, {"yanked": false}],
				"2.2.0": [{"yanked": false}]
			}
		}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := pypi.NewClient(pypi.WithBaseURL(srv.URL))

	// 3.0.0 fully yanked, post/dev/local excluded; 2.3.0 still has one
	// live file so it beats 2.2.0
	info, err := client.LatestVersion(context.Background(), "demo")
	gt.NoError(t, err)
	gt.Value(t, info.Version).Equal("2.3.0")
}

func TestLatestVersion_NoStableVersions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/demo/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"info": {"name": "demo", "version": "1.0.0rc1"},
			"releases": {
				"1.0.0rc1": [{"yanked": false}]
			}
		}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := pypi.NewClient(pypi.WithBaseURL(srv.URL))

	_, err := client.LatestVersion(context.Background(), "demo")
	gt.Error(t, err)
	if !goerr.HasTag(err, types.TagNotFound) {
		t.Errorf("expected not-found tag, got: %v", err)
	}
}

func TestLatestVersion_PackageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := pypi.NewClient(pypi.WithBaseURL(srv.URL))

	_, err := client.LatestVersion(context.Background(), "this-package-does-not-exist")
	gt.Error(t, err)
	if !goerr.HasTag(err, types.TagNotFound) {
		t.Errorf("expected not-found tag, got: %v", err)
	}
}

func TestLatestVersion_MalformedResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/demo/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := pypi.NewClient(pypi.WithBaseURL(srv.URL))

	_, err := client.LatestVersion(context.Background(), "demo")
	gt.Error(t, err)
	if !goerr.HasTag(err, types.TagParse) {
		t.Errorf("expected parse tag, got: %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Django", want: "django"},
		{in: "typing_extensions", want: "typing-extensions"},
		{in: "ruamel.yaml", want: "ruamel-yaml"},
		{in: "  requests ", want: "requests"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			gt.Value(t, pypi.NormalizeName(tt.in)).Equal(tt.want)
		})
	}
}
