package assistant

import (
	"context"

	"github.com/leofalp/braveagent/providers/tool/bravesearch"
	"github.com/leofalp/braveagent/providers/tool/webfetch"
)

// Deps is what the assistant's tools need from the outside world.
type Deps interface {
	// Search runs one Brave web search returning up to count results.
	Search(ctx context.Context, query string, count int) bravesearch.Envelope
	// SearchPaginated gathers up to maxResults results across pages.
	SearchPaginated(ctx context.Context, query string, maxResults int) bravesearch.Envelope
	// FetchPage returns the raw body of url, or "" when it cannot be fetched.
	FetchPage(ctx context.Context, url string) string
}

// BraveDeps implements Deps over the Brave Search API and plain HTTP page
// retrieval. It is built once per session and never modified.
type BraveDeps struct {
	search  *bravesearch.Client
	fetcher *webfetch.Fetcher
}

// NewBraveDeps binds the search client and the page fetcher.
func NewBraveDeps(search *bravesearch.Client, fetcher *webfetch.Fetcher) BraveDeps {
	return BraveDeps{search: search, fetcher: fetcher}
}

// Search implements Deps. Locale and safe-search settings come from the
// client defaults.
func (d BraveDeps) Search(ctx context.Context, query string, count int) bravesearch.Envelope {
	return d.search.FetchSearchResults(ctx, query, bravesearch.SearchOptions{Count: count})
}

// SearchPaginated implements Deps.
func (d BraveDeps) SearchPaginated(ctx context.Context, query string, maxResults int) bravesearch.Envelope {
	return d.search.SearchWithPagination(ctx, query, maxResults, bravesearch.SearchOptions{})
}

// FetchPage implements Deps.
func (d BraveDeps) FetchPage(ctx context.Context, url string) string {
	return d.fetcher.FetchPageContent(ctx, url)
}
