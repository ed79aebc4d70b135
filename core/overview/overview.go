package overview

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/leofalp/braveagent/core/client"
	"github.com/leofalp/braveagent/core/cost"
	"github.com/leofalp/braveagent/providers/ai"
)

// Overview aggregates model usage over a chat session: request counts, token
// usage and the tools the model asked for. It is safe for concurrent use.
type Overview struct {
	mu        sync.Mutex
	started   time.Time
	requests  int
	failures  int
	usage     ai.Usage
	toolCalls map[string]int
	modelCost *cost.ModelCost
}

// New starts a session overview. modelCost may be nil when pricing is
// unknown.
func New(modelCost *cost.ModelCost) *Overview {
	return &Overview{
		started:   time.Now(),
		toolCalls: make(map[string]int),
		modelCost: modelCost,
	}
}

// Middleware records every model call made through the client.
func (o *Overview) Middleware() client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			response, err := next(ctx, request)
			if err != nil {
				o.recordFailure()
				return nil, err
			}
			o.recordResponse(response)
			return response, nil
		}
	}
}

func (o *Overview) recordFailure() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests++
	o.failures++
}

func (o *Overview) recordResponse(response *ai.ChatResponse) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.requests++
	if usage := response.Usage; usage != nil {
		o.usage.PromptTokens += usage.PromptTokens
		o.usage.CompletionTokens += usage.CompletionTokens
		o.usage.TotalTokens += usage.TotalTokens
		o.usage.CachedTokens += usage.CachedTokens
	}
	for _, call := range response.ToolCalls {
		o.toolCalls[call.Function.Name]++
	}
}

// Summary is a point-in-time copy of an Overview.
type Summary struct {
	Duration  time.Duration
	Requests  int
	Failures  int
	Usage     ai.Usage
	ToolCalls map[string]int
	// Cost is nil when no pricing was configured.
	Cost *cost.Summary
}

// Summary returns the totals so far.
func (o *Overview) Summary() Summary {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := Summary{
		Duration:  time.Since(o.started),
		Requests:  o.requests,
		Failures:  o.failures,
		Usage:     o.usage,
		ToolCalls: maps.Clone(o.toolCalls),
	}
	if o.modelCost != nil && !o.modelCost.IsZero() {
		c := o.modelCost.CalculateUsageCost(o.usage)
		s.Cost = &c
	}
	return s
}

// LogAttrs returns the summary as slog attributes.
func (s Summary) LogAttrs() []any {
	attrs := []any{
		slog.Duration("duration", s.Duration),
		slog.Int("llm_requests", s.Requests),
		slog.Int("llm_failures", s.Failures),
		slog.Int("prompt_tokens", s.Usage.PromptTokens),
		slog.Int("completion_tokens", s.Usage.CompletionTokens),
		slog.Int("total_tokens", s.Usage.TotalTokens),
	}

	if len(s.ToolCalls) > 0 {
		tools := make([]any, 0, len(s.ToolCalls))
		for name, count := range s.ToolCalls {
			tools = append(tools, slog.Int(name, count))
		}
		attrs = append(attrs, slog.Group("tool_calls", tools...))
	}

	if s.Cost != nil {
		attrs = append(attrs, slog.Float64("estimated_cost_usd", s.Cost.TotalCost))
	}
	return attrs
}
