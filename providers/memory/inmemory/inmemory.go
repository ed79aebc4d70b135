package inmemory

import (
	"context"
	"sync"

	"github.com/leofalp/braveagent/providers/ai"
	"github.com/leofalp/braveagent/providers/memory"
)

// ArrayMemory is a simple, concurrency-safe in-memory message store.
type ArrayMemory struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// New returns a new, empty [ArrayMemory] ready for immediate use.
func New() *ArrayMemory {
	return &ArrayMemory{
		messages: []ai.Message{},
	}
}

var _ memory.Provider = (*ArrayMemory)(nil)

// AppendMessages stores messages at the end of the history.
func (m *ArrayMemory) AppendMessages(_ context.Context, messages ...ai.Message) {
	if len(messages) == 0 {
		return
	}
	m.mu.Lock()
	m.messages = append(m.messages, messages...)
	m.mu.Unlock()
}

// Count returns the number of messages stored. The returned error is always nil.
func (m *ArrayMemory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages), nil
}

// AllMessages returns a copy of all messages so callers cannot mutate the
// stored history. The returned error is always nil.
func (m *ArrayMemory) AllMessages(_ context.Context) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ai.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}
