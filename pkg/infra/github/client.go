package github

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/semaphore"

	"github.com/buildprobe/buildprobe/pkg/domain/interfaces"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

const (
	DefaultConcurrency = 8
	DefaultTimeout     = 20 * time.Second

	headerRateRemaining = "X-RateLimit-Remaining"

	fallbackBranch = "main"
	maxErrorBody   = 4096
)

// config holds internal client configuration
type config struct {
	concurrency int
	timeout     time.Duration
	token       string
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithConcurrency sets the maximum number of in-flight API calls
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// WithTimeout sets the total timeout of a single API call
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithToken sets the bearer credential sent with every request
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithBaseURL overrides the REST API base URL
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Client is a rate-aware GitHub REST client. A single Client is shared by
// every enrichment task; its permit pool bounds in-flight calls across the
// whole batch.
type Client struct {
	gh      *github.Client
	permits *semaphore.Weighted
	timeout time.Duration
	logger  *slog.Logger
}

var _ interfaces.GitHubClient = (*Client)(nil)

// NewClient creates a new GitHub client
func NewClient(opts ...Option) (*Client, error) {
	cfg := &config{
		concurrency: DefaultConcurrency,
		timeout:     DefaultTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.concurrency < 1 {
		return nil, goerr.New("concurrency must be at least 1", goerr.V("concurrency", cfg.concurrency))
	}
	if cfg.timeout <= 0 {
		return nil, goerr.New("timeout must be positive", goerr.V("timeout", cfg.timeout))
	}

	gh := github.NewClient(cfg.httpClient)
	if cfg.token != "" {
		gh = gh.WithAuthToken(cfg.token)
	}
	if cfg.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", cfg.baseURL))
		}
		gh.BaseURL = u
	}

	return &Client{
		gh:      gh,
		permits: semaphore.NewWeighted(int64(cfg.concurrency)),
		timeout: cfg.timeout,
		logger:  cfg.logger,
	}, nil
}

// DefaultBranch returns the repository's default branch, "main" when the API omits it
func (c *Client) DefaultBranch(ctx context.Context, ref model.RepoRef) (string, error) {
	var repo *github.Repository
	_, err := c.call(ctx, "repos/"+ref.FullName(), func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var err error
		repo, resp, err = c.gh.Repositories.Get(ctx, ref.Owner, ref.Name)
		return resp, err
	})
	if err != nil {
		return "", err
	}

	if branch := repo.GetDefaultBranch(); branch != "" {
		return branch, nil
	}
	return fallbackBranch, nil
}

// TreePaths lists every path of branch's tree recursively
func (c *Client) TreePaths(ctx context.Context, ref model.RepoRef, branch string) (*model.TreeListing, error) {
	var tree *github.Tree
	rate, err := c.call(ctx, "repos/"+ref.FullName()+"/git/trees/"+branch, func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var err error
		tree, resp, err = c.gh.Git.GetTree(ctx, ref.Owner, ref.Name, branch, true)
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	if tree.GetTruncated() {
		c.logger.Warn("Tree listing truncated by GitHub",
			"repo", ref.FullName(),
			"branch", branch,
			"entries", len(tree.Entries),
		)
	}

	seen := make(map[string]struct{}, len(tree.Entries))
	paths := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		p := entry.GetPath()
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return &model.TreeListing{
		Paths: paths,
		Rate:  rate,
	}, nil
}

// RateLimitRemaining returns the remaining core API quota. It never fails;
// any error is reported as an unknown quota.
func (c *Client) RateLimitRemaining(ctx context.Context) (int, bool) {
	var limits *github.RateLimits
	_, err := c.call(ctx, "rate_limit", func(ctx context.Context) (*github.Response, error) {
		var resp *github.Response
		var err error
		limits, resp, err = c.gh.RateLimit.Get(ctx)
		return resp, err
	})
	if err != nil {
		c.logger.Debug("Rate limit probe failed", "error", err)
		return 0, false
	}

	core := limits.GetCore()
	if core == nil {
		return 0, false
	}
	return core.Remaining, true
}

// call runs fn while holding one permit, under the per-call timeout
func (c *Client) call(ctx context.Context, endpoint string, fn func(ctx context.Context) (*github.Response, error)) (model.RateStatus, error) {
	if err := c.permits.Acquire(ctx, 1); err != nil {
		return model.RateStatus{}, goerr.Wrap(err, "failed to acquire API permit", goerr.V("endpoint", endpoint))
	}
	defer c.permits.Release(1)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := fn(callCtx)
	c.logger.Debug("GitHub API call",
		"endpoint", endpoint,
		"duration_ms", time.Since(started).Milliseconds(),
		"error", err,
	)
	if err != nil {
		return model.RateStatus{}, convertError(err, endpoint, c.timeout)
	}

	if resp == nil {
		return model.RateStatus{}, nil
	}
	return parseRate(resp), nil
}

// convertError maps go-github and context errors onto APIError and ErrTimeout
func convertError(err error, endpoint string, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return goerr.Wrap(ErrTimeout, "GitHub API call exceeded timeout",
			goerr.V("endpoint", endpoint),
			goerr.V("timeout", timeout.String()),
		)
	}

	var (
		errResp   *github.ErrorResponse
		rateErr   *github.RateLimitError
		abuseErr  *github.AbuseRateLimitError
		apiErr    *APIError
		httpResp  *http.Response
		fallbackM string
	)
	switch {
	case errors.As(err, &rateErr):
		httpResp, fallbackM = rateErr.Response, rateErr.Message
	case errors.As(err, &abuseErr):
		httpResp, fallbackM = abuseErr.Response, abuseErr.Message
	case errors.As(err, &errResp):
		httpResp, fallbackM = errResp.Response, errResp.Message
	}

	if httpResp != nil && httpResp.StatusCode >= 400 {
		apiErr = &APIError{
			StatusCode: httpResp.StatusCode,
			Body:       readErrorBody(httpResp, fallbackM),
		}
		return goerr.Wrap(apiErr, "GitHub API request failed",
			goerr.V("endpoint", endpoint),
			goerr.V("status", apiErr.StatusCode),
		)
	}

	return goerr.Wrap(err, "GitHub API request failed", goerr.V("endpoint", endpoint))
}

// readErrorBody returns the raw error body, go-github re-populates it after decoding
func readErrorBody(resp *http.Response, fallback string) string {
	if resp.Body != nil {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err == nil && len(data) > 0 {
			return strings.TrimSpace(string(data))
		}
	}
	return fallback
}

// parseRate converts go-github's parsed rate. go-github leaves Rate zeroed
// when the headers are absent, so header presence decides Observed.
func parseRate(resp *github.Response) model.RateStatus {
	if resp.Header.Get(headerRateRemaining) == "" {
		return model.RateStatus{}
	}
	return model.RateStatus{
		Limit:     resp.Rate.Limit,
		Remaining: resp.Rate.Remaining,
		Reset:     resp.Rate.Reset.Time.UTC(),
		Observed:  true,
	}
}
