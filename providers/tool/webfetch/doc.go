// Package webfetch retrieves web pages over HTTP and HTTPS for the agent's
// page tool, and renders fetched HTML as Markdown when the model asks for it.
//
// [Fetcher.FetchPageContent] never returns an error: any failure yields an
// empty string and a log line. URL normalisation, redirect limits and a
// response-size cap are applied on every request.
package webfetch
