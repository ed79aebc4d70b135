// Package client sends chat requests to an [ai.Provider] through a chain of
// middlewares.
//
// A [Client] fixes the model, system prompt and generation settings for a
// session; callers pass the message history and the tools on each
// [Client.Send]. Logging and per-request timeouts are provided as middlewares
// in the middleware subpackage.
package client
