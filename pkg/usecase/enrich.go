package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/buildprobe/buildprobe/pkg/domain/interfaces"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

const (
	keyURL           = "url"
	keyBuildMetadata = "build_metadata"

	unsupportedHostNote = "Non-GitHub repositories not yet supported"
)

// EnrichOption is a functional option for the enricher
type EnrichOption func(*enricher)

// WithEnrichLogger sets the logger
func WithEnrichLogger(logger *slog.Logger) EnrichOption {
	return func(e *enricher) {
		e.logger = logger
	}
}

// WithClock overrides the time source used for detection timestamps
func WithClock(now func() time.Time) EnrichOption {
	return func(e *enricher) {
		e.now = now
	}
}

type enricher struct {
	githubClient interfaces.GitHubClient
	logger       *slog.Logger
	now          func() time.Time
}

// NewEnricher creates a new EnrichUseCase instance
func NewEnricher(githubClient interfaces.GitHubClient, opts ...EnrichOption) interfaces.EnrichUseCase {
	e := &enricher{
		githubClient: githubClient,
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich resolves the record's repository, detects its build systems and
// merges the result into rec. Client failures are recorded in
// build_metadata.error and never returned.
func (uc *enricher) Enrich(ctx context.Context, index int, rec *model.Record) model.Outcome {
	outcome := model.Outcome{Index: index}

	rawURL, ok := rec.URL()
	if !ok {
		outcome.Status = model.OutcomeSkipped
		return outcome
	}

	ref, ok := ParseRepoRef(rawURL)
	if !ok {
		meta := model.NewRecord()
		meta.Set("repo_host", string(model.RepoHostUnknown))
		meta.Set("note", unsupportedHostNote)
		meta.Set("detection_timestamp", uc.timestamp())
		rec.Merge(keyBuildMetadata, meta)

		uc.logger.Debug("Unsupported repository host", "index", index, "url", rawURL)
		outcome.Status = model.OutcomeUnsupported
		return outcome
	}
	outcome.Ref = ref

	logger := uc.logger.With("index", index, "repo", ref.FullName())

	branch, listing, err := uc.inspect(ctx, ref)
	if err != nil {
		rec.Merge(keyBuildMetadata, failureMetadata(ref, err, uc.timestamp()))

		logger.Warn("Failed to inspect repository", "error", err)
		outcome.Status = model.OutcomeFailed
		outcome.Err = err
		return outcome
	}

	detection := DetectBuildSystems(listing.Paths)
	for _, signal := range detection.Signals {
		rec.Set(string(signal.Name), signal.Present)
	}

	// Outcome keys of an earlier failed or unsupported run no longer apply
	if prev, ok := rec.GetRecord(keyBuildMetadata); ok {
		prev.Delete("error")
		prev.Delete("note")
	}

	meta := model.NewRecord()
	meta.Set("repo_host", string(ref.Host))
	meta.Set("owner", ref.Owner)
	meta.Set("repo", ref.Name)
	meta.Set("default_branch", branch)
	meta.Set("detection_timestamp", uc.timestamp())
	if listing.Rate.Observed {
		meta.Set("api_rate_limit_remaining", listing.Rate.Remaining)
	} else {
		meta.Set("api_rate_limit_remaining", nil)
	}
	meta.Set("files_present", toAnySlice(detection.FilesPresent))
	meta.Set("ci_providers", toAnySlice(detection.CIProviders))
	meta.Set("detected_file_count", detection.DetectedFileCount)
	rec.Merge(keyBuildMetadata, meta)

	logger.Debug("Repository inspected",
		"branch", branch,
		"path_count", len(listing.Paths),
		"files_present", detection.FilesPresent,
	)

	outcome.Status = model.OutcomeEnriched
	return outcome
}

// inspect resolves the default branch and then lists its tree; the two calls
// are sequential because the listing needs the branch.
func (uc *enricher) inspect(ctx context.Context, ref model.RepoRef) (string, *model.TreeListing, error) {
	branch, err := uc.githubClient.DefaultBranch(ctx, ref)
	if err != nil {
		return "", nil, err
	}

	listing, err := uc.githubClient.TreePaths(ctx, ref, branch)
	if err != nil {
		return "", nil, err
	}

	return branch, listing, nil
}

func (uc *enricher) timestamp() string {
	return formatTimestamp(uc.now)
}

func formatTimestamp(now func() time.Time) string {
	return now().UTC().Format(time.RFC3339)
}

// failureMetadata is the build_metadata patch of a record whose inspection
// failed. Owner and repo are omitted when ref was never resolved.
func failureMetadata(ref model.RepoRef, err error, timestamp string) *model.Record {
	meta := model.NewRecord()
	if ref.Host == "" {
		meta.Set("repo_host", string(model.RepoHostUnknown))
	} else {
		meta.Set("repo_host", string(ref.Host))
		meta.Set("owner", ref.Owner)
		meta.Set("repo", ref.Name)
	}
	meta.Set("error", err.Error())
	meta.Set("detection_timestamp", timestamp)
	return meta
}

// toAnySlice matches the []any shape that records loaded from YAML carry
func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
