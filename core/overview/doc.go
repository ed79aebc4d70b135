// Package overview tracks model usage across a chat session.
//
// An [Overview] is attached to a [client.Client] through
// [Overview.Middleware]; [Overview.Summary] reports the request count, token
// usage, tool call statistics and, when pricing is known, the estimated cost.
package overview
