package middleware

import (
	"context"
	"time"

	"github.com/leofalp/braveagent/core/client"
	"github.com/leofalp/braveagent/providers/ai"
)

// NewTimeoutMiddleware returns a middleware that bounds every provider call
// with timeout. A caller context with a shorter deadline still wins. A
// non-positive timeout leaves the context untouched.
func NewTimeoutMiddleware(timeout time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			if timeout <= 0 {
				return next(ctx, request)
			}

			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
