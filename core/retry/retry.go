package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/leofalp/braveagent/patterns/react"
	"github.com/leofalp/braveagent/providers/ai"
)

const (
	// DefaultMaxRetries is the default number of attempts, the first included.
	DefaultMaxRetries = 3
	// DefaultDelay is the default pause between attempts.
	DefaultDelay = time.Second
)

// ErrRetryExhausted is returned by RunWithRetry when every attempt failed. The
// error also wraps the last failure so callers can use [errors.Is] /
// [errors.As] to inspect the root cause.
//
// Example:
//
//	if errors.Is(err, retry.ErrRetryExhausted) {
//	    // all attempts failed
//	}
var ErrRetryExhausted = errors.New("all retry attempts exhausted")

// Runner is the agent runtime driven by RunWithRetry.
type Runner[D any] interface {
	Run(ctx context.Context, input string, deps D, history []ai.Message) (*react.Result, error)
}

// Config holds the tuning parameters of RunWithRetry. Zero values are
// replaced with the defaults.
type Config struct {
	// MaxRetries is the total number of attempts. Default: 3.
	MaxRetries int
	// Delay is the fixed wait between attempts. Default: 1s.
	Delay time.Duration
	// Logger receives one entry per failed attempt. Default: slog.Default().
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Outcome is the result of a successful invocation.
type Outcome struct {
	// Output is the agent's answer.
	Output string
	// History is the input history followed by the messages of the
	// successful attempt.
	History []ai.Message
	// NewMessages holds only the messages of the successful attempt.
	NewMessages []ai.Message
	// Attempts is the number of runs made, the successful one included.
	Attempts int
}

// RunWithRetry invokes runner with the same input, deps and history until one
// run succeeds or the attempts are spent. Failed attempts leave no trace in
// the history. Cancelling ctx during the delay returns the context error.
func RunWithRetry[D any](ctx context.Context, runner Runner[D], input string, deps D, history []ai.Message, config Config) (*Outcome, error) {
	config = config.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= config.MaxRetries; attempt++ {
		result, err := runner.Run(ctx, input, deps, history)
		if err == nil {
			return &Outcome{
				Output:      result.Output,
				History:     append(slices.Clone(history), result.NewMessages...),
				NewMessages: result.NewMessages,
				Attempts:    attempt,
			}, nil
		}

		lastErr = err
		config.Logger.ErrorContext(ctx, fmt.Sprintf("Error running agent (attempt %d/%d)", attempt, config.MaxRetries),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", config.MaxRetries),
			slog.String("error", err.Error()),
		)

		if attempt == config.MaxRetries {
			break
		}

		timer := time.NewTimer(config.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, config.MaxRetries, lastErr)
}
