package config

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/buildprobe/buildprobe/pkg/infra/github"
)

const dnsRefreshInterval = 5 * time.Minute

// GitHub holds GitHub API client configuration
type GitHub struct {
	Token       string `masq:"secret"`
	Concurrency int
	Timeout     time.Duration
	APIURL      string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub token; without it the low unauthenticated quota applies",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum number of in-flight GitHub API calls",
			Value:       github.DefaultConcurrency,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("CONCURRENCY"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Total timeout of a single GitHub API call",
			Value:       github.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("BUILDPROBE_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL, for GitHub Enterprise Server",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("GITHUB_API_URL"),
		},
	}
}

// Authenticated reports whether a token was provided
func (c *GitHub) Authenticated() bool {
	return c.Token != ""
}

// Validate checks the configuration
func (c *GitHub) Validate() error {
	if c.Concurrency < 1 {
		return goerr.New("concurrency must be a positive integer", goerr.V("concurrency", c.Concurrency))
	}
	if c.Timeout <= 0 {
		return goerr.New("timeout must be positive", goerr.V("timeout", c.Timeout))
	}
	return nil
}

// Configure creates a GitHub client from the configuration. The client's
// transport caches DNS lookups until ctx is done.
func (c *GitHub) Configure(ctx context.Context, logger *slog.Logger) (*github.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{
		Transport: github.NewLoggingTransport(github.NewCachedTransport(ctx, dnsRefreshInterval), logger),
	}

	opts := []github.Option{
		github.WithConcurrency(c.Concurrency),
		github.WithTimeout(c.Timeout),
		github.WithToken(c.Token),
		github.WithHTTPClient(httpClient),
		github.WithLogger(logger),
	}
	if c.APIURL != "" {
		opts = append(opts, github.WithBaseURL(c.APIURL))
	}

	client, err := github.NewClient(opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client")
	}
	return client, nil
}
