package client

import (
	"context"
	"errors"
	"testing"

	"github.com/leofalp/braveagent/providers/ai"
)

// mockProvider records the last request and replays a canned response.
type mockProvider struct {
	lastRequest ai.ChatRequest
	response    *ai.ChatResponse
	err         error
}

func (m *mockProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	m.lastRequest = request
	return m.response, m.err
}

func (m *mockProvider) IsStopMessage(message *ai.ChatResponse) bool {
	return message == nil || len(message.ToolCalls) == 0
}

func TestNew_NilProvider(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilProvider) {
		t.Errorf("expected ErrNilProvider, got %v", err)
	}
}

func TestNew_NilMiddleware(t *testing.T) {
	_, err := New(&mockProvider{}, WithMiddleware(nil))
	if !errors.Is(err, ErrNilMiddleware) {
		t.Errorf("expected ErrNilMiddleware, got %v", err)
	}
}

func TestSend_BuildsRequest(t *testing.T) {
	provider := &mockProvider{response: &ai.ChatResponse{Content: "hi"}}
	c, err := New(provider,
		WithModel("gpt-4o-mini"),
		WithSystemPrompt("be helpful"),
		WithGenerationConfig(ai.GenerationConfig{MaxTokens: 100}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := []ai.Message{{Role: ai.RoleUser, Content: "hello"}}
	tools := []ai.ToolDescription{{Name: "search_web"}}
	resp, err := c.Send(context.Background(), messages, tools)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "hi" {
		t.Errorf("unexpected response %+v", resp)
	}

	req := provider.lastRequest
	if req.Model != "gpt-4o-mini" || req.SystemPrompt != "be helpful" {
		t.Errorf("unexpected request: %+v", req)
	}
	if len(req.Messages) != 1 || len(req.Tools) != 1 {
		t.Errorf("expected messages and tools to be forwarded, got %+v", req)
	}
	if req.GenerationConfig == nil || req.GenerationConfig.MaxTokens != 100 {
		t.Errorf("expected generation config, got %+v", req.GenerationConfig)
	}
	if c.Model() != "gpt-4o-mini" {
		t.Errorf("unexpected model %q", c.Model())
	}
}

func TestSend_PropagatesProviderError(t *testing.T) {
	errProvider := errors.New("provider down")
	c, _ := New(&mockProvider{err: errProvider})

	if _, err := c.Send(context.Background(), nil, nil); !errors.Is(err, errProvider) {
		t.Errorf("expected provider error, got %v", err)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	record := func(name string) Middleware {
		return func(next SendFunc) SendFunc {
			return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
				order = append(order, name+":before")
				resp, err := next(ctx, request)
				order = append(order, name+":after")
				return resp, err
			}
		}
	}

	c, err := New(&mockProvider{response: &ai.ChatResponse{}}, WithMiddleware(record("outer"), record("inner")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Send(context.Background(), nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"outer:before", "inner:before", "inner:after", "outer:after"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestMiddlewareCanRewriteRequest(t *testing.T) {
	provider := &mockProvider{response: &ai.ChatResponse{}}
	override := func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			request.Model = "override"
			return next(ctx, request)
		}
	}

	c, _ := New(provider, WithModel("original"), WithMiddleware(override))
	_, _ = c.Send(context.Background(), nil, nil)

	if provider.lastRequest.Model != "override" {
		t.Errorf("expected middleware to rewrite the model, got %q", provider.lastRequest.Model)
	}
}

func TestIsStopMessageDelegates(t *testing.T) {
	c, _ := New(&mockProvider{})
	if !c.IsStopMessage(&ai.ChatResponse{Content: "done"}) {
		t.Error("expected stop for a response without tool calls")
	}
	if c.IsStopMessage(&ai.ChatResponse{ToolCalls: []ai.ToolCall{{ID: "1"}}}) {
		t.Error("expected no stop when tool calls are present")
	}
}
