package ai

import (
	"context"
)

// Provider is the interface every LLM backend implements.
type Provider interface {
	// SendMessage sends a chat request and returns the completed response.
	// Returns an error if the call fails, the context is cancelled, or the
	// response cannot be decoded.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// IsStopMessage reports whether the response is terminal, meaning the
	// model has produced its answer and requests no further tool calls.
	IsStopMessage(message *ChatResponse) bool
}
