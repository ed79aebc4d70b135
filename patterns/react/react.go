package react

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/leofalp/braveagent/core/client"
	"github.com/leofalp/braveagent/providers/ai"
	"github.com/leofalp/braveagent/providers/tool"
)

// DefaultMaxIterations bounds the number of model calls in one run.
const DefaultMaxIterations = 10

// ErrMaxIterations is returned when the model keeps requesting tools after
// the iteration budget is spent.
var ErrMaxIterations = errors.New("react: maximum iterations reached")

var errToolPanic = errors.New("tool panicked")

// Toolset builds the tools available for one run from its dependencies.
type Toolset[D any] func(deps D) *tool.Catalog

// Result is the outcome of a successful run.
type Result struct {
	// Output is the final assistant text.
	Output string
	// NewMessages holds every message produced by the run, starting with the
	// user input, in history order.
	NewMessages []ai.Message
	// Iterations is the number of model calls made.
	Iterations int
}

type agentOptions struct {
	maxIterations int
	logger        *slog.Logger
}

// Option configures an Agent.
type Option func(*agentOptions)

// WithMaxIterations sets the maximum number of model calls per run. Values
// below 1 keep the default.
func WithMaxIterations(n int) Option {
	return func(o *agentOptions) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithLogger sets the logger used for tool execution traces.
func WithLogger(logger *slog.Logger) Option {
	return func(o *agentOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Agent runs the ReAct loop with dependencies of type D.
type Agent[D any] struct {
	client        *client.Client
	toolset       Toolset[D]
	maxIterations int
	logger        *slog.Logger
}

// New creates an agent over c. toolset may be nil for a tool-less agent.
func New[D any](c *client.Client, toolset Toolset[D], opts ...Option) (*Agent[D], error) {
	if c == nil {
		return nil, errors.New("react: client is nil")
	}

	o := agentOptions{
		maxIterations: DefaultMaxIterations,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Agent[D]{
		client:        c,
		toolset:       toolset,
		maxIterations: o.maxIterations,
		logger:        o.logger,
	}, nil
}

// Run sends input after history and executes requested tools until the model
// answers without tool calls. history is not modified.
func (a *Agent[D]) Run(ctx context.Context, input string, deps D, history []ai.Message) (*Result, error) {
	catalog := tool.NewCatalog()
	if a.toolset != nil {
		if c := a.toolset(deps); c != nil {
			catalog = c
		}
	}
	descriptions := catalog.Descriptions()

	userMessage := ai.Message{Role: ai.RoleUser, Content: input}
	messages := append(slices.Clone(history), userMessage)
	newMessages := []ai.Message{userMessage}

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		response, err := a.client.Send(ctx, messages, descriptions)
		if err != nil {
			return nil, fmt.Errorf("model call failed at iteration %d: %w", iteration, err)
		}

		assistantMessage := response.AsMessage()
		messages = append(messages, assistantMessage)
		newMessages = append(newMessages, assistantMessage)

		if len(response.ToolCalls) == 0 || a.client.IsStopMessage(response) {
			return &Result{
				Output:      response.Content,
				NewMessages: newMessages,
				Iterations:  iteration,
			}, nil
		}

		for _, call := range response.ToolCalls {
			toolMessage := a.executeToolCall(ctx, catalog, call)
			messages = append(messages, toolMessage)
			newMessages = append(newMessages, toolMessage)
		}
	}

	return nil, fmt.Errorf("%w (%d)", ErrMaxIterations, a.maxIterations)
}

// executeToolCall runs one tool call and always returns the tool message to
// send back to the model, whatever the outcome.
func (a *Agent[D]) executeToolCall(ctx context.Context, catalog *tool.Catalog, call ai.ToolCall) ai.Message {
	name := call.Function.Name
	message := ai.Message{
		Role:       ai.RoleTool,
		ToolCallID: call.ID,
		Name:       name,
	}

	t, ok := catalog.Get(name)
	if !ok {
		a.logger.WarnContext(ctx, "unknown tool requested", slog.String("tool", name))
		message.Content = toolErrorContent(ai.ToolErrorNotFound, fmt.Sprintf("tool %q not found", name))
		return message
	}

	a.logger.DebugContext(ctx, "executing tool",
		slog.String("tool", name),
		slog.String("arguments", call.Function.Arguments),
	)

	output, err := safeCall(ctx, t, call.Function.Arguments)
	if err != nil {
		errorType := ai.ToolErrorExecutionFailed
		if errors.Is(err, errToolPanic) {
			errorType = ai.ToolErrorPanic
		}
		a.logger.ErrorContext(ctx, "tool failed", slog.String("tool", name), slog.String("error", err.Error()))
		message.Content = toolErrorContent(errorType, err.Error())
		return message
	}

	message.Content = output
	return message
}

// safeCall runs the tool and turns a panic into an error.
func safeCall(ctx context.Context, t tool.GenericTool, arguments string) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errToolPanic, r)
		}
	}()
	return t.Call(ctx, arguments)
}

func toolErrorContent(errorType, message string) string {
	content, err := ai.NewToolResultError(errorType, message).ToJSON()
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":%q}`, errorType)
	}
	return content
}
