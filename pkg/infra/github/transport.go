package github

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rs/dnscache"
)

// NewCachedTransport creates an HTTP transport that resolves hosts through a
// DNS cache. The cache is refreshed every refresh interval until ctx is done.
func NewCachedTransport(ctx context.Context, refresh time.Duration) *http.Transport {
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(refresh)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				resolver.Refresh(true)
			}
		}
	}()

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := resolver.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}
			for _, ip := range ips {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
			}
			return nil, fmt.Errorf("failed to dial any resolved IP for %s", host)
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// loggingTransport logs every API round trip at debug level
type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport wraps base so that each request is logged with its
// status, duration and remaining quota.
func NewLoggingTransport(base http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{base: base, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	attrs := []any{
		"method", req.Method,
		"path", req.URL.Path,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		t.logger.Debug("GitHub API request failed", append(attrs, "error", err)...)
		return resp, err
	}

	attrs = append(attrs, "status", resp.StatusCode)
	if remaining := resp.Header.Get(headerRateRemaining); remaining != "" {
		attrs = append(attrs, "rate_remaining", remaining)
	}
	t.logger.Debug("GitHub API request", attrs...)
	return resp, nil
}
