// Package utils holds the small helpers shared by the providers: JSON-over-HTTP
// round-trips for the LLM API ([DoPostSync]), lenient parsing of model-produced
// JSON ([ParseStringAs]) and string helpers used when logging payloads.
package utils
