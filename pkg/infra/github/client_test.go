package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/gt"

	"github.com/buildprobe/buildprobe/pkg/domain/model"
	githubinfra "github.com/buildprobe/buildprobe/pkg/infra/github"
)

var testRef = model.RepoRef{Host: model.RepoHostGitHub, Owner: "octo", Name: "tool"}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, router http.Handler, opts ...githubinfra.Option) *githubinfra.Client {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	opts = append([]githubinfra.Option{githubinfra.WithBaseURL(server.URL)}, opts...)
	client, err := githubinfra.NewClient(opts...)
	gt.NoError(t, err)
	return client
}

func TestNewClient_InvalidConfig(t *testing.T) {
	t.Run("zero concurrency", func(t *testing.T) {
		_, err := githubinfra.NewClient(githubinfra.WithConcurrency(0))
		gt.Error(t, err)
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := githubinfra.NewClient(githubinfra.WithTimeout(-time.Second))
		gt.Error(t, err)
	})
}

func TestClient_DefaultBranch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns default branch", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, chi.URLParam(r, "owner"), "octo")
			gt.Equal(t, chi.URLParam(r, "repo"), "tool")
			writeJSON(w, http.StatusOK, map[string]any{"default_branch": "develop"})
		})

		branch, err := newTestClient(t, r).DefaultBranch(ctx, testRef)
		gt.NoError(t, err)
		gt.Equal(t, branch, "develop")
	})

	t.Run("falls back to main when field is missing", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"name": "tool"})
		})

		branch, err := newTestClient(t, r).DefaultBranch(ctx, testRef)
		gt.NoError(t, err)
		gt.Equal(t, branch, "main")
	})

	t.Run("returns APIError on 404", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
		})

		_, err := newTestClient(t, r).DefaultBranch(ctx, testRef)
		gt.Error(t, err)

		var apiErr *githubinfra.APIError
		gt.True(t, errors.As(err, &apiErr))
		gt.Equal(t, apiErr.StatusCode, http.StatusNotFound)
		gt.True(t, apiErr.IsNotFound())
		gt.S(t, apiErr.Body).Contains("Not Found")
	})

	t.Run("returns APIError on 500", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
		})

		_, err := newTestClient(t, r).DefaultBranch(ctx, testRef)

		var apiErr *githubinfra.APIError
		gt.True(t, errors.As(err, &apiErr))
		gt.Equal(t, apiErr.StatusCode, http.StatusInternalServerError)
	})
}

func TestClient_TreePaths(t *testing.T) {
	ctx := context.Background()

	r := chi.NewRouter()
	r.Get("/repos/{owner}/{repo}/git/trees/{branch}", func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, chi.URLParam(r, "branch"), "main")
		gt.Equal(t, r.URL.Query().Get("recursive"), "1")

		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "4321")
		w.Header().Set("X-RateLimit-Reset", "1700000000")
		writeJSON(w, http.StatusOK, map[string]any{
			"sha": "abc",
			"tree": []map[string]any{
				{"path": "go.mod", "type": "blob"},
				{"path": ".github", "type": "tree"},
				{"path": ".github/workflows/ci.yml", "type": "blob"},
				{"type": "blob"},
				{"path": "", "type": "blob"},
			},
			"truncated": false,
		})
	})

	listing, err := newTestClient(t, r).TreePaths(ctx, testRef, "main")
	gt.NoError(t, err)
	gt.A(t, listing.Paths).Equal([]string{".github", ".github/workflows/ci.yml", "go.mod"})
	gt.True(t, listing.Rate.Observed)
	gt.Equal(t, listing.Rate.Remaining, 4321)
	gt.Equal(t, listing.Rate.Limit, 5000)
	gt.Equal(t, listing.Rate.Reset, time.Unix(1700000000, 0).UTC())
}

func TestClient_TreePaths_NoRateHeaders(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/repos/{owner}/{repo}/git/trees/{branch}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tree": []map[string]any{}})
	})

	listing, err := newTestClient(t, r).TreePaths(context.Background(), testRef, "main")
	gt.NoError(t, err)
	gt.A(t, listing.Paths).Length(0)
	gt.False(t, listing.Rate.Observed)
}

func TestClient_TreePaths_Conflict(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/repos/{owner}/{repo}/git/trees/{branch}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "Git Repository is empty."})
	})

	_, err := newTestClient(t, r).TreePaths(context.Background(), testRef, "main")

	var apiErr *githubinfra.APIError
	gt.True(t, errors.As(err, &apiErr))
	gt.Equal(t, apiErr.StatusCode, http.StatusConflict)
	gt.S(t, err.Error()).Contains("Git Repository is empty.")
}

func TestClient_RateLimitRemaining(t *testing.T) {
	ctx := context.Background()

	t.Run("returns core remaining", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/rate_limit", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"resources": map[string]any{
					"core": map[string]any{"limit": 60, "remaining": 42, "reset": 1700000000},
				},
			})
		})

		remaining, ok := newTestClient(t, r).RateLimitRemaining(ctx)
		gt.True(t, ok)
		gt.Equal(t, remaining, 42)
	})

	t.Run("unknown on server error", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/rate_limit", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "boom"})
		})

		_, ok := newTestClient(t, r).RateLimitRemaining(ctx)
		gt.False(t, ok)
	})

	t.Run("unknown when core is missing", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/rate_limit", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"resources": map[string]any{}})
		})

		_, ok := newTestClient(t, r).RateLimitRemaining(ctx)
		gt.False(t, ok)
	})
}

func TestClient_Headers(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantAuth string
	}{
		{name: "with token", token: "secret-token", wantAuth: "Bearer secret-token"},
		{name: "without token", token: "", wantAuth: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth, gotAccept string
			r := chi.NewRouter()
			r.Get("/repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotAccept = r.Header.Get("Accept")
				writeJSON(w, http.StatusOK, map[string]any{"default_branch": "main"})
			})

			client := newTestClient(t, r, githubinfra.WithToken(tt.token))
			_, err := client.DefaultBranch(context.Background(), testRef)
			gt.NoError(t, err)
			gt.Equal(t, gotAuth, tt.wantAuth)
			gt.S(t, gotAccept).Contains("application/vnd.github")
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		writeJSON(w, http.StatusOK, map[string]any{"default_branch": "main"})
	})

	client := newTestClient(t, r, githubinfra.WithTimeout(50*time.Millisecond))
	_, err := client.DefaultBranch(context.Background(), testRef)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, githubinfra.ErrTimeout))
}

func TestClient_PermitPoolBoundsInFlightCalls(t *testing.T) {
	const (
		concurrency = 3
		calls       = 20
	)

	var inFlight, maxInFlight atomic.Int32
	r := chi.NewRouter()
	r.Get("/repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			cur := maxInFlight.Load()
			if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		writeJSON(w, http.StatusOK, map[string]any{"default_branch": "main"})
	})

	client := newTestClient(t, r, githubinfra.WithConcurrency(concurrency))

	var wg sync.WaitGroup
	errs := make([]error, calls)
	for i := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.DefaultBranch(context.Background(), testRef)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		gt.NoError(t, err)
	}
	gt.True(t, maxInFlight.Load() <= concurrency)
	gt.True(t, maxInFlight.Load() >= 1)
}
