package issues

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, handler http.Handler) *GitHubSource {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	src, err := NewGitHubSourceWithHTTPClient(server.Client(), server.URL+"/", "haxtheweb/issues", zerolog.Nop())
	require.NoError(t, err)
	return src
}

func TestGitHubSourcePaginatesAndSkipsPullRequests(t *testing.T) {
	var pages []string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/haxtheweb/issues/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		pages = append(pages, r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"number": 1, "title": "Old bug", "state": "closed", "user": {"login": "bob"},
				"created_at": "2026-01-01T00:00:00Z", "closed_at": "2026-01-02T00:00:00Z"}]`)
			return
		}

		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/haxtheweb/issues/issues?page=2>; rel="next"`, "http://"+r.Host))
		fmt.Fprint(w, `[
			{"number": 3, "title": "Fix a11y", "state": "open", "user": {"login": "alice"},
			 "labels": [{"name": "bug"}], "created_at": "2026-10-12T00:00:00Z"},
			{"number": 2, "title": "A pull request", "state": "open", "user": {"login": "alice"},
			 "created_at": "2026-10-12T00:00:00Z", "pull_request": {"url": "https://api.github.com/x"}}
		]`)
	})

	src := newTestSource(t, mux)
	all, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"", "2"}, pages)

	assert.Equal(t, 3, all[0].Number)
	assert.Equal(t, "OPEN", all[0].State)
	assert.Equal(t, "alice", all[0].Author.Login)
	assert.True(t, all[0].HasLabel("bug"))
	assert.Nil(t, all[0].ClosedAt)

	assert.Equal(t, 1, all[1].Number)
	assert.True(t, all[1].Closed())
	require.NotNil(t, all[1].ClosedAt)
}

func TestGitHubSourceInvalidRepo(t *testing.T) {
	src, err := NewGitHubSourceWithHTTPClient(http.DefaultClient, "http://127.0.0.1/", "not-a-repo", zerolog.Nop())
	require.NoError(t, err)

	_, err = src.List(context.Background())
	assert.ErrorContains(t, err, "expected owner/repo")
}

func TestGitHubSourceAPIError(t *testing.T) {
	src := newTestSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))

	_, err := src.List(context.Background())
	assert.ErrorContains(t, err, "listing issues for haxtheweb/issues")
}
