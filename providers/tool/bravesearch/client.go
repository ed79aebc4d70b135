package bravesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/leofalp/braveagent/internal/utils"
)

const (
	// DefaultEndpoint is the Brave web search endpoint.
	DefaultEndpoint = "https://api.search.brave.com/res/v1/web/search"
	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 30 * time.Second

	DefaultCount      = 10
	DefaultCountry    = "US"
	DefaultSearchLang = "en"
	DefaultUILang     = "en-US"
	DefaultSafeSearch = "moderate"
)

// SearchOptions are the paging and locale parameters of a search. Zero
// values select the client defaults.
type SearchOptions struct {
	Count      int
	Offset     int
	Country    string
	SearchLang string
	UILang     string
	SafeSearch string // off, moderate or strict
}

// Client performs Brave web searches with one API key.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	defaults   SearchOptions
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the search endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit paces requests to at most requestsPerSecond. A non-positive
// value disables pacing.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
}

// WithDefaults replaces the locale defaults applied to zero-valued options.
// Zero fields in defaults keep the built-in values.
func WithDefaults(defaults SearchOptions) Option {
	return func(c *Client) {
		c.defaults = mergeOptions(defaults, c.defaults)
	}
}

// WithLogger sets the logger. It defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a search client. Requests are not paced unless
// WithRateLimit is given.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		defaults: SearchOptions{
			Count:      DefaultCount,
			Country:    DefaultCountry,
			SearchLang: DefaultSearchLang,
			UILang:     DefaultUILang,
			SafeSearch: DefaultSafeSearch,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Defaults returns the options applied to zero-valued search fields.
func (c *Client) Defaults() SearchOptions {
	return c.defaults
}

// FetchSearchResults runs one search. A 200 response is returned as decoded;
// any other status, transport fault or undecodable body yields an
// [ErrorEnvelope] describing it.
func (c *Client) FetchSearchResults(ctx context.Context, query string, opts SearchOptions) Envelope {
	opts = mergeOptions(opts, c.defaults)

	c.logger.InfoContext(ctx, "Searching", "query", query, "count", opts.Count, "offset", opts.Offset)

	if err := c.limiter.Wait(ctx); err != nil {
		return c.fail(ctx, fmt.Sprintf("unexpected error: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+queryParams(query, opts).Encode(), nil)
	if err != nil {
		return c.fail(ctx, fmt.Sprintf("unexpected error: %v", err))
	}
	// Accept-Encoding is left to net/http so gzip is negotiated and decoded transparently.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(ctx, fmt.Sprintf("request error: %v", err))
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(ctx, fmt.Sprintf("request error: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return c.fail(ctx, fmt.Sprintf("brave api error: %d - %s", resp.StatusCode, string(body)))
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return c.fail(ctx, fmt.Sprintf("unexpected error: decoding response: %v", err))
	}
	return env
}

func (c *Client) fail(ctx context.Context, message string) Envelope {
	c.logger.ErrorContext(ctx, "Brave search failed", "error", utils.TruncateStringDefault(message))
	return ErrorEnvelope(message)
}

func queryParams(query string, opts SearchOptions) url.Values {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(opts.Count))
	params.Set("offset", strconv.Itoa(opts.Offset))
	params.Set("country", opts.Country)
	params.Set("search_lang", opts.SearchLang)
	params.Set("ui_lang", opts.UILang)
	params.Set("safesearch", opts.SafeSearch)
	return params
}

// mergeOptions fills the zero fields of opts from defaults. Offset has no
// default other than zero.
func mergeOptions(opts, defaults SearchOptions) SearchOptions {
	if opts.Count <= 0 {
		opts.Count = defaults.Count
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Country == "" {
		opts.Country = defaults.Country
	}
	if opts.SearchLang == "" {
		opts.SearchLang = defaults.SearchLang
	}
	if opts.UILang == "" {
		opts.UILang = defaults.UILang
	}
	if opts.SafeSearch == "" {
		opts.SafeSearch = defaults.SafeSearch
	}
	return opts
}
