package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/leofalp/braveagent/providers/ai"
)

var (
	// ErrNilProvider is returned by New when no provider is given.
	ErrNilProvider = errors.New("client: provider is nil")
	// ErrNilMiddleware is returned by New when a middleware is nil.
	ErrNilMiddleware = errors.New("client: middleware is nil")
)

// Client sends chat requests with a fixed model and system prompt.
type Client struct {
	provider ai.Provider
	send     SendFunc

	model            string
	systemPrompt     string
	generationConfig *ai.GenerationConfig
	middlewares      []Middleware
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the model name sent with every request.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithSystemPrompt sets the system prompt sent ahead of the history.
func WithSystemPrompt(prompt string) Option {
	return func(c *Client) {
		c.systemPrompt = prompt
	}
}

// WithGenerationConfig sets sampling parameters.
func WithGenerationConfig(config ai.GenerationConfig) Option {
	return func(c *Client) {
		c.generationConfig = &config
	}
}

// WithMiddleware appends middlewares to the send chain. Earlier middlewares
// wrap later ones.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(c *Client) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// New builds a client over provider.
func New(provider ai.Provider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	c := &Client{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	for i, mw := range c.middlewares {
		if mw == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilMiddleware, i)
		}
	}

	c.send = buildSendChain(provider, c.middlewares)
	return c, nil
}

// Send asks the model for the next message given the conversation so far and
// the tools it may call.
func (c *Client) Send(ctx context.Context, messages []ai.Message, tools []ai.ToolDescription) (*ai.ChatResponse, error) {
	return c.send(ctx, ai.ChatRequest{
		Model:            c.model,
		Messages:         messages,
		SystemPrompt:     c.systemPrompt,
		Tools:            tools,
		GenerationConfig: c.generationConfig,
	})
}

// IsStopMessage reports whether response ends the model's turn, using the
// provider's finish-reason semantics.
func (c *Client) IsStopMessage(response *ai.ChatResponse) bool {
	return c.provider.IsStopMessage(response)
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
