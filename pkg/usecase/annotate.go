package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/buildprobe/buildprobe/pkg/domain/interfaces"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
	"github.com/buildprobe/buildprobe/pkg/utils/async"
)

// callsPerRecord is a rough estimate: repository metadata plus tree listing
const callsPerRecord = 2

// AnnotateOption is a functional option for the annotator
type AnnotateOption func(*annotator)

// WithAuthenticated marks the GitHub client as carrying a token, which skips the quota pre-flight
func WithAuthenticated(authenticated bool) AnnotateOption {
	return func(a *annotator) {
		a.authenticated = authenticated
	}
}

// WithAnnotateClock overrides the time source used for detection timestamps
func WithAnnotateClock(now func() time.Time) AnnotateOption {
	return func(a *annotator) {
		a.now = now
	}
}

// WithAnnotateLogger sets the logger
func WithAnnotateLogger(logger *slog.Logger) AnnotateOption {
	return func(a *annotator) {
		a.logger = logger
	}
}

type annotator struct {
	store         interfaces.RecordStore
	githubClient  interfaces.GitHubClient
	enricher      interfaces.EnrichUseCase
	authenticated bool
	logger        *slog.Logger
	now           func() time.Time
}

// NewAnnotator creates a new AnnotateUseCase instance
func NewAnnotator(
	store interfaces.RecordStore,
	githubClient interfaces.GitHubClient,
	enricher interfaces.EnrichUseCase,
	opts ...AnnotateOption,
) interfaces.AnnotateUseCase {
	a := &annotator{
		store:        store,
		githubClient: githubClient,
		enricher:     enricher,
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run loads every record from path, enriches all of them concurrently and
// saves them back in input order. Only load and save failures are returned;
// per-record failures end up in each record's build_metadata.
func (uc *annotator) Run(ctx context.Context, path string) (*model.BatchSummary, error) {
	logger := uc.logger.With("run_id", uuid.NewString())

	records, err := uc.store.Load(ctx, path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load package records", goerr.V("path", path))
	}

	logger.Info("Loaded package records",
		"path", path,
		"count", len(records),
		"authenticated", uc.authenticated,
	)

	summary := &model.BatchSummary{}
	if !uc.authenticated {
		uc.preflight(ctx, logger, len(records), summary)
	}

	outcomes := async.Gather(ctx, logger, len(records),
		func(ctx context.Context, i int) model.Outcome {
			return uc.enricher.Enrich(ctx, i, records[i])
		},
		func(i int, r any) model.Outcome {
			err := goerr.New("panic during enrichment", goerr.V("recover", r))
			var ref model.RepoRef
			if rawURL, ok := records[i].URL(); ok {
				ref, _ = ParseRepoRef(rawURL)
			}
			records[i].Merge(keyBuildMetadata, failureMetadata(ref, err, formatTimestamp(uc.now)))
			return model.Outcome{Index: i, Status: model.OutcomeFailed, Ref: ref, Err: err}
		},
	)

	for _, o := range outcomes {
		summary.Add(o)
	}

	// A cancelled run leaves records with bogus failures; keep the file as is
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "annotation cancelled, records not saved", goerr.V("path", path))
	}

	if err := uc.store.Save(ctx, path, records); err != nil {
		return nil, goerr.Wrap(err, "failed to save package records", goerr.V("path", path))
	}

	logger.Info("Annotated package records",
		"path", path,
		"total", summary.Total,
		"enriched", summary.Enriched,
		"failed", summary.Failed,
		"unsupported", summary.Unsupported,
		"skipped", summary.Skipped,
	)

	return summary, nil
}

// preflight warns when the unauthenticated quota looks too small for the
// batch. It is a heuristic only and never blocks the run.
func (uc *annotator) preflight(ctx context.Context, logger *slog.Logger, count int, summary *model.BatchSummary) {
	estimate := max(1, count*callsPerRecord)

	remaining, ok := uc.githubClient.RateLimitRemaining(ctx)
	if !ok {
		logger.Debug("Rate limit unknown, skipping quota check")
		return
	}

	summary.QuotaRemaining = remaining
	summary.QuotaEstimate = estimate
	if remaining < estimate {
		summary.QuotaWarning = true
		logger.Warn("GitHub unauthenticated rate limit seems lower than the estimated calls needed, consider setting GITHUB_TOKEN",
			"remaining", remaining,
			"estimated_calls", estimate,
		)
	}
}
