package memory

import (
	"context"

	"github.com/leofalp/braveagent/providers/ai"
)

// Provider stores the message history of a chat session.
type Provider interface {
	// AppendMessages stores copies of messages at the end of the history, in order.
	AppendMessages(ctx context.Context, messages ...ai.Message)
	// AllMessages returns a copy of the full history.
	AllMessages(ctx context.Context) ([]ai.Message, error)
	// Count returns the number of stored messages.
	Count(ctx context.Context) (int, error)
}
