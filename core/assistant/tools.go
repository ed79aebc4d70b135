package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leofalp/braveagent/patterns/react"
	"github.com/leofalp/braveagent/providers/tool"
	"github.com/leofalp/braveagent/providers/tool/bravesearch"
	"github.com/leofalp/braveagent/providers/tool/webfetch"
)

// Tool names as seen by the model.
const (
	ToolSearchWeb          = "search_web"
	ToolSearchWebPaginated = "search_web_paginated"
	ToolGetPageContent     = "get_page_content"
	ToolSummarizeResults   = "summarize_search_results"
)

const (
	// DefaultSearchCount is used when search_web is called without a count.
	DefaultSearchCount = 10
	// MaxSearchCount is the largest page the Brave API serves.
	MaxSearchCount = 20
	// MaxPaginatedResults bounds search_web_paginated, which costs one API
	// request per ten results.
	MaxPaginatedResults = 50
)

const noResults = "No search results found."

// SearchWebInput is the argument of search_web.
type SearchWebInput struct {
	Query string `json:"query" jsonschema:"description=The search query"`
	Count int    `json:"count,omitempty" jsonschema:"description=Number of results to return, from 1 to 20 (default: 10)"`
}

// SearchWebPaginatedInput is the argument of search_web_paginated.
type SearchWebPaginatedInput struct {
	Query      string `json:"query" jsonschema:"description=The search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"description=Maximum number of results to gather across pages, up to 50 (default: 30)"`
}

// GetPageContentInput is the argument of get_page_content.
type GetPageContentInput struct {
	URL        string `json:"url" jsonschema:"description=The URL of the page to fetch"`
	AsMarkdown bool   `json:"as_markdown,omitempty" jsonschema:"description=Return the page as cleaned Markdown instead of raw HTML"`
}

// SummarizeInput is the argument of summarize_search_results.
type SummarizeInput struct {
	Results bravesearch.Envelope `json:"results" jsonschema:"description=A search result object as returned by search_web"`
}

// Toolset returns the tool factory for the assistant agent. A nil logger
// means slog.Default().
func Toolset(logger *slog.Logger) react.Toolset[Deps] {
	if logger == nil {
		logger = slog.Default()
	}

	return func(deps Deps) *tool.Catalog {
		return tool.NewCatalogWithTools(
			tool.NewTool(ToolSearchWeb,
				func(ctx context.Context, in SearchWebInput) (bravesearch.Envelope, error) {
					return searchWeb(ctx, logger, deps, in), nil
				},
				tool.WithDescription("Search the web using the Brave Search API. Returns the search results and metadata, or an error field when the search failed."),
			),
			tool.NewTool(ToolSearchWebPaginated,
				func(ctx context.Context, in SearchWebPaginatedInput) (bravesearch.Envelope, error) {
					return searchWebPaginated(ctx, logger, deps, in), nil
				},
				tool.WithDescription("Search the web using the Brave Search API, collecting results from several pages. Use it when more than 20 results are needed."),
			),
			tool.NewTool(ToolGetPageContent,
				func(ctx context.Context, in GetPageContentInput) (string, error) {
					return getPageContent(ctx, logger, deps, in), nil
				},
				tool.WithDescription("Fetch the content of a web page. Returns an empty string when the page cannot be fetched."),
			),
			tool.NewTool(ToolSummarizeResults,
				func(_ context.Context, in SummarizeInput) (string, error) {
					return SummarizeSearchResults(in.Results), nil
				},
				tool.WithDescription("Summarize search results in a human-readable Markdown format."),
			),
		)
	}
}

func searchWeb(ctx context.Context, logger *slog.Logger, deps Deps, in SearchWebInput) bravesearch.Envelope {
	count := clampCount(in.Count)

	result := deps.Search(ctx, in.Query, count)
	if result.Failed() {
		logger.ErrorContext(ctx, "brave search failed",
			slog.String("query", in.Query),
			slog.String("error", result.Error),
		)
		return bravesearch.ErrorEnvelope(result.Error)
	}
	return result
}

func searchWebPaginated(ctx context.Context, logger *slog.Logger, deps Deps, in SearchWebPaginatedInput) bravesearch.Envelope {
	maxResults := min(in.MaxResults, MaxPaginatedResults)

	result := deps.SearchPaginated(ctx, in.Query, maxResults)
	if result.Failed() {
		logger.ErrorContext(ctx, "brave paginated search failed",
			slog.String("query", in.Query),
			slog.String("error", result.Error),
		)
		return bravesearch.ErrorEnvelope(result.Error)
	}
	return result
}

func getPageContent(ctx context.Context, logger *slog.Logger, deps Deps, in GetPageContentInput) string {
	content := deps.FetchPage(ctx, in.URL)
	if content == "" || !in.AsMarkdown {
		return content
	}

	markdown, err := webfetch.ToMarkdown(content)
	if err != nil {
		logger.WarnContext(ctx, "markdown conversion failed, returning raw content",
			slog.String("url", in.URL),
			slog.String("error", err.Error()),
		)
		return content
	}

	logger.DebugContext(ctx, "page converted to markdown",
		slog.String("url", in.URL),
		slog.String("title", webfetch.Title(content)),
		slog.Int("html_length", len(content)),
		slog.Int("markdown_length", len(markdown)),
	)
	return markdown
}

// clampCount maps a requested result count into [1, MaxSearchCount], with
// DefaultSearchCount for unset values.
func clampCount(count int) int {
	switch {
	case count <= 0:
		return DefaultSearchCount
	case count > MaxSearchCount:
		return MaxSearchCount
	default:
		return count
	}
}

// SummarizeSearchResults renders results as numbered Markdown blocks. A failed
// envelope or an empty result list yields "No search results found.".
func SummarizeSearchResults(results bravesearch.Envelope) string {
	items := results.Results()
	if len(items) == 0 {
		return noResults
	}

	var sb strings.Builder
	sb.WriteString("## Search Results\n\n")
	for i, r := range items {
		fmt.Fprintf(&sb, "### %d. %s\n", i+1, orDefault(r.Title, "No title"))
		fmt.Fprintf(&sb, "**URL**: %s\n", orDefault(r.URL, "No URL"))
		fmt.Fprintf(&sb, "**Description**: %s\n\n", orDefault(r.Description, "No description"))
	}
	return sb.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
