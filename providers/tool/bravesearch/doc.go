// Package bravesearch is a client for the Brave Search web search API.
//
// [Client.FetchSearchResults] performs one search request and
// [Client.SearchWithPagination] gathers several pages into one result set.
// Neither returns a Go error: failures are reported inside the returned
// [Envelope], so callers handing results to a model always have a well-formed
// value to pass on.
//
//	client := bravesearch.NewClient(apiKey, bravesearch.WithRateLimit(1))
//	env := client.FetchSearchResults(ctx, "golang generics", bravesearch.SearchOptions{Count: 5})
//	if env.Failed() {
//		log.Println(env.Error)
//	}
package bravesearch
