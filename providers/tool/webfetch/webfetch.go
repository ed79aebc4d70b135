package webfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/leofalp/braveagent/internal/utils"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies as a desktop browser; many sites refuse unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	// MaxBodySize is the maximum response body size (10MB)
	MaxBodySize = 10 * 1024 * 1024
	// MaxRedirects is the number of redirects followed before giving up
	MaxRedirects = 10

	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 10 * time.Second
	idleConnTimeout       = 90 * time.Second
)

var (
	errEmptyURL         = errors.New("URL cannot be empty")
	errBodyTooLarge     = fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	errTooManyRedirects = fmt.Errorf("too many redirects (>%d)", MaxRedirects)
)

// Fetcher downloads pages for the agent.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the overall request timeout, body read included.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

// WithTransport replaces the HTTP transport, e.g. with a test server's.
func WithTransport(transport http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = transport
	}
}

// WithLogger sets the logger. It defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher returns a Fetcher with [DefaultTimeout], [DefaultUserAgent] and
// a transport with bounded dial, TLS and header timeouts.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   tlsHandshakeTimeout,
				ResponseHeaderTimeout: responseHeaderTimeout,
				IdleConnTimeout:       idleConnTimeout,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				ForceAttemptHTTP2:     true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= MaxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPageContent returns the body of the page at rawURL when the server
// answers 200, and "" on any other status or failure. URLs without a scheme
// get "https://".
func (f *Fetcher) FetchPageContent(ctx context.Context, rawURL string) string {
	f.logger.InfoContext(ctx, "Fetching content", "url", rawURL)

	body, err := f.fetch(ctx, rawURL)
	if err != nil {
		f.logger.ErrorContext(ctx, "Error fetching page", "url", rawURL, "error", err.Error())
		return ""
	}
	return body
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 100))
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(preview))
	}

	// One byte past the cap tells an exact-size body from an oversized one.
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > MaxBodySize {
		return "", errBodyTooLarge
	}
	return string(data), nil
}

func normalizeURL(rawURL string) (string, error) {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return "", errEmptyURL
	}

	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return target, nil
	}
	if scheme, _, found := strings.Cut(lower, "://"); found {
		return "", fmt.Errorf("unsupported URL scheme %q", scheme)
	}
	return "https://" + target, nil
}
