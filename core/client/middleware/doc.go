// Package middleware provides ready-made [client.Middleware] implementations
// for structured logging of model calls and per-request deadlines.
package middleware
