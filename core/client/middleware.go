package client

import (
	"context"

	"github.com/leofalp/braveagent/providers/ai"
)

// SendFunc sends a chat request to the provider and returns the completed
// response. It is the unit threaded through the middleware chain.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware wraps the next SendFunc of the chain. Middlewares are applied
// outermost-first: the first one given is the first to see a request.
type Middleware func(next SendFunc) SendFunc

// buildSendChain wraps the provider call with middlewares so that
// middlewares[0] is outermost.
func buildSendChain(provider ai.Provider, middlewares []Middleware) SendFunc {
	var chain SendFunc = provider.SendMessage

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}
	return chain
}
