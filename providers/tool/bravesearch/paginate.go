package bravesearch

import (
	"context"
)

const (
	// ResultsPerPage is the page size requested while paginating.
	ResultsPerPage = 10
	// DefaultMaxResults applies when SearchWithPagination gets a non-positive maximum.
	DefaultMaxResults = 30
)

// SearchWithPagination collects up to maxResults web results by requesting
// ceil(maxResults/ResultsPerPage) pages one after another.
//
// The offset sent for each page is the page index (0, 1, 2, ...), not a
// result offset; Brave interprets offset in units of pages.
//
// When the first page fails its envelope is returned unchanged. A later
// failure stops the loop and the results gathered so far are returned
// without an error. Top-level and "web" metadata come from the first page.
func (c *Client) SearchWithPagination(ctx context.Context, query string, maxResults int, opts SearchOptions) Envelope {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	pages := (maxResults + ResultsPerPage - 1) / ResultsPerPage

	aggregate := Envelope{Web: &WebSection{Results: []Result{}}}
	for page := 0; page < pages; page++ {
		pageOpts := opts
		pageOpts.Count = ResultsPerPage
		pageOpts.Offset = page

		env := c.FetchSearchResults(ctx, query, pageOpts)
		if env.Failed() {
			c.logger.ErrorContext(ctx, "Pagination stopped", "query", query, "page", page, "error", env.Error)
			if page == 0 {
				return env
			}
			break
		}

		if env.Web != nil {
			if page == 0 {
				aggregate.Extra = cloneExtra(env.Extra)
				aggregate.Web.Extra = cloneExtra(env.Web.Extra)
			}
			aggregate.Web.Results = append(aggregate.Web.Results, env.Web.Results...)
		}

		if len(aggregate.Web.Results) >= maxResults {
			aggregate.Web.Results = aggregate.Web.Results[:maxResults]
			break
		}
	}

	c.logger.DebugContext(ctx, "Pagination finished", "query", query, "results", len(aggregate.Web.Results))
	return aggregate
}
