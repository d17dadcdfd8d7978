package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/buildprobe/buildprobe/pkg/domain/interfaces/mocks"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
	githubinfra "github.com/buildprobe/buildprobe/pkg/infra/github"
	"github.com/buildprobe/buildprobe/pkg/usecase"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newRecord(kv ...any) *model.Record {
	rec := model.NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		rec.Set(kv[i].(string), kv[i+1])
	}
	return rec
}

func metaString(t *testing.T, rec *model.Record, key string) string {
	t.Helper()
	meta, ok := rec.GetRecord("build_metadata")
	gt.True(t, ok)
	v, _ := meta.GetString(key)
	return v
}

func hasAnySignal(rec *model.Record) bool {
	for _, name := range usecase.SignalNames() {
		if _, ok := rec.Get(string(name)); ok {
			return true
		}
	}
	return false
}

func TestEnricher_Enrich_Success(t *testing.T) {
	ctx := context.Background()

	client := &mocks.GitHubClientMock{
		DefaultBranchFunc: func(ctx context.Context, ref model.RepoRef) (string, error) {
			return "develop", nil
		},
		TreePathsFunc: func(ctx context.Context, ref model.RepoRef, branch string) (*model.TreeListing, error) {
			return &model.TreeListing{
				Paths: []string{".github/workflows/ci.yml", "README.md", "go.mod"},
				Rate:  model.RateStatus{Remaining: 4999, Limit: 5000, Observed: true},
			}, nil
		},
	}

	existingMeta := newRecord("maintainer", "alice")
	rec := newRecord(
		"url", "https://github.com/owner/repo",
		"version", "v1.2.3",
		"gomod", false,
		"build_metadata", existingMeta,
	)

	uc := usecase.NewEnricher(client, usecase.WithClock(fixedClock))
	outcome := uc.Enrich(ctx, 3, rec)

	gt.Equal(t, outcome.Status, model.OutcomeEnriched)
	gt.Equal(t, outcome.Index, 3)
	gt.NoError(t, outcome.Err)
	gt.Equal(t, outcome.Ref, model.RepoRef{Host: model.RepoHostGitHub, Owner: "owner", Name: "repo"})

	// The branch resolved by the first call feeds the tree listing
	gt.A(t, client.TreePathsCalls()).Length(1)
	gt.Equal(t, client.TreePathsCalls()[0].Branch, "develop")

	// Every signal is written; existing keys keep their position
	for _, name := range usecase.SignalNames() {
		_, ok := rec.Get(string(name))
		gt.True(t, ok)
	}
	keys := rec.Keys()
	gt.A(t, keys[:4]).Equal([]string{"url", "version", "gomod", "build_metadata"})
	gt.A(t, keys).Length(4 + 13)

	gomod, _ := rec.Get("gomod")
	gt.Equal(t, gomod, any(true))
	actions, _ := rec.Get("github_actions")
	gt.Equal(t, actions, any(true))
	makefile, _ := rec.Get("makefile")
	gt.Equal(t, makefile, any(false))

	meta, ok := rec.GetRecord("build_metadata")
	gt.True(t, ok)
	gt.A(t, meta.Keys()).Equal([]string{
		"maintainer",
		"repo_host",
		"owner",
		"repo",
		"default_branch",
		"detection_timestamp",
		"api_rate_limit_remaining",
		"files_present",
		"ci_providers",
		"detected_file_count",
	})
	gt.Equal(t, metaString(t, rec, "maintainer"), "alice")
	gt.Equal(t, metaString(t, rec, "repo_host"), "github")
	gt.Equal(t, metaString(t, rec, "owner"), "owner")
	gt.Equal(t, metaString(t, rec, "repo"), "repo")
	gt.Equal(t, metaString(t, rec, "default_branch"), "develop")
	gt.Equal(t, metaString(t, rec, "detection_timestamp"), "2026-10-19T12:00:00Z")

	remaining, _ := meta.Get("api_rate_limit_remaining")
	gt.Equal(t, remaining, any(4999))
	files, _ := meta.Get("files_present")
	gt.Equal(t, files, any([]any{"go.mod", "GitHub Actions"}))
	ci, _ := meta.Get("ci_providers")
	gt.Equal(t, ci, any([]any{"github_actions"}))
	count, _ := meta.Get("detected_file_count")
	gt.Equal(t, count, any(2))
}

func TestEnricher_Enrich_RateNotObserved(t *testing.T) {
	client := &mocks.GitHubClientMock{
		DefaultBranchFunc: func(ctx context.Context, ref model.RepoRef) (string, error) {
			return "main", nil
		},
		TreePathsFunc: func(ctx context.Context, ref model.RepoRef, branch string) (*model.TreeListing, error) {
			return &model.TreeListing{Paths: []string{"README.md"}}, nil
		},
	}

	rec := newRecord("url", "https://github.com/owner/repo")
	outcome := usecase.NewEnricher(client, usecase.WithClock(fixedClock)).Enrich(context.Background(), 0, rec)
	gt.Equal(t, outcome.Status, model.OutcomeEnriched)

	meta, _ := rec.GetRecord("build_metadata")
	remaining, ok := meta.Get("api_rate_limit_remaining")
	gt.True(t, ok)
	gt.True(t, remaining == nil)

	count, _ := meta.Get("detected_file_count")
	gt.Equal(t, count, any(0))
}

func TestEnricher_Enrich_UnsupportedHost(t *testing.T) {
	// Client funcs are nil: any call would panic
	client := &mocks.GitHubClientMock{}

	rec := newRecord(
		"url", "https://example.com/owner/repo",
		"version", "v0.1.0",
		"makefile", "keep-me",
	)

	outcome := usecase.NewEnricher(client, usecase.WithClock(fixedClock)).Enrich(context.Background(), 0, rec)
	gt.Equal(t, outcome.Status, model.OutcomeUnsupported)

	gt.A(t, rec.Keys()).Equal([]string{"url", "version", "makefile", "build_metadata"})
	makefile, _ := rec.Get("makefile")
	gt.Equal(t, makefile, any("keep-me"))

	meta, _ := rec.GetRecord("build_metadata")
	gt.A(t, meta.Keys()).Equal([]string{"repo_host", "note", "detection_timestamp"})
	gt.Equal(t, metaString(t, rec, "repo_host"), "unknown")
	gt.Equal(t, metaString(t, rec, "detection_timestamp"), "2026-10-19T12:00:00Z")
}

func TestEnricher_Enrich_NoURL(t *testing.T) {
	client := &mocks.GitHubClientMock{}

	for name, rec := range map[string]*model.Record{
		"missing url":    newRecord("version", "v1"),
		"non-string url": newRecord("url", 12, "version", "v1"),
	} {
		t.Run(name, func(t *testing.T) {
			before := rec.Keys()
			outcome := usecase.NewEnricher(client).Enrich(context.Background(), 0, rec)
			gt.Equal(t, outcome.Status, model.OutcomeSkipped)
			gt.A(t, rec.Keys()).Equal(before)
		})
	}
}

func TestEnricher_Enrich_Failures(t *testing.T) {
	apiErr := goerr.Wrap(&githubinfra.APIError{StatusCode: 404, Body: `{"message":"Not Found"}`}, "GitHub API request failed")

	tests := []struct {
		name         string
		branchErr    error
		treeErr      error
		wantTreeCall bool
	}{
		{name: "default branch fails", branchErr: apiErr, wantTreeCall: false},
		{name: "tree listing fails", treeErr: apiErr, wantTreeCall: true},
		{name: "tree listing times out", treeErr: goerr.Wrap(githubinfra.ErrTimeout, "GitHub API call exceeded timeout"), wantTreeCall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mocks.GitHubClientMock{
				DefaultBranchFunc: func(ctx context.Context, ref model.RepoRef) (string, error) {
					if tt.branchErr != nil {
						return "", tt.branchErr
					}
					return "main", nil
				},
				TreePathsFunc: func(ctx context.Context, ref model.RepoRef, branch string) (*model.TreeListing, error) {
					if tt.treeErr != nil {
						return nil, tt.treeErr
					}
					return &model.TreeListing{Paths: []string{"go.mod"}}, nil
				},
			}

			rec := newRecord("url", "https://github.com/owner/repo", "version", "v1")
			outcome := usecase.NewEnricher(client, usecase.WithClock(fixedClock)).Enrich(context.Background(), 7, rec)

			gt.Equal(t, outcome.Status, model.OutcomeFailed)
			gt.Error(t, outcome.Err)
			gt.Equal(t, len(client.TreePathsCalls()) == 1, tt.wantTreeCall)

			// No partial signal set
			gt.False(t, hasAnySignal(rec))

			meta, ok := rec.GetRecord("build_metadata")
			gt.True(t, ok)
			gt.A(t, meta.Keys()).Equal([]string{"repo_host", "owner", "repo", "error", "detection_timestamp"})
			gt.Equal(t, metaString(t, rec, "repo_host"), "github")
			gt.Equal(t, metaString(t, rec, "error"), outcome.Err.Error())
			gt.Equal(t, metaString(t, rec, "detection_timestamp"), "2026-10-19T12:00:00Z")
		})
	}
}

func TestEnricher_Enrich_ClearsStaleError(t *testing.T) {
	client := &mocks.GitHubClientMock{
		DefaultBranchFunc: func(ctx context.Context, ref model.RepoRef) (string, error) {
			return "main", nil
		},
		TreePathsFunc: func(ctx context.Context, ref model.RepoRef, branch string) (*model.TreeListing, error) {
			return &model.TreeListing{Paths: []string{"go.mod"}}, nil
		},
	}

	// Left behind by an earlier rate-limited run
	rec := newRecord(
		"url", "https://github.com/owner/repo",
		"version", "v1",
		"build_metadata", newRecord(
			"repo_host", "github",
			"owner", "owner",
			"repo", "repo",
			"error", "HTTP 403: rate limited",
			"detection_timestamp", "2026-10-18T00:00:00Z",
		),
	)

	outcome := usecase.NewEnricher(client, usecase.WithClock(fixedClock)).Enrich(context.Background(), 0, rec)
	gt.Equal(t, outcome.Status, model.OutcomeEnriched)

	meta, ok := rec.GetRecord("build_metadata")
	gt.True(t, ok)
	_, hasErr := meta.Get("error")
	gt.False(t, hasErr)
	gt.Equal(t, metaString(t, rec, "detection_timestamp"), "2026-10-19T12:00:00Z")

	gomod, _ := rec.Get("gomod")
	gt.Equal(t, gomod, any(true))

	table := usecase.BuildExportTable([]*model.Record{rec})
	gt.A(t, table.Rows).Length(1)
	gt.Equal(t, table.Rows[0][0], "https://github.com/owner/repo")
}
