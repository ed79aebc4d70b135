package conversation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/leofalp/braveagent/core/retry"
	"github.com/leofalp/braveagent/providers/ai"
	"github.com/leofalp/braveagent/providers/memory"
)

const (
	welcomeBanner = "Welcome to the Brave Search Agent!\nType 'exit' to quit.\n\n"
	inputPrompt   = "You: "
	goodbye       = "Goodbye!"
	apology       = "Sorry, I encountered an error. Please try again with a different query."
)

var exitKeywords = map[string]bool{
	"exit": true,
	"quit": true,
	"bye":  true,
}

// TurnFunc answers one user input given the history so far. It returns the
// answer and the messages to append to the history.
type TurnFunc func(ctx context.Context, input string, history []ai.Message) (string, []ai.Message, error)

// RetryTurn adapts an agent runtime to a TurnFunc that retries failed runs
// according to config.
func RetryTurn[D any](runner retry.Runner[D], deps D, config retry.Config) TurnFunc {
	return func(ctx context.Context, input string, history []ai.Message) (string, []ai.Message, error) {
		outcome, err := retry.RunWithRetry(ctx, runner, input, deps, history, config)
		if err != nil {
			return "", nil, err
		}
		return outcome.Output, outcome.NewMessages, nil
	}
}

// Loop is an interactive read-answer loop over a line-oriented reader.
type Loop struct {
	in     io.Reader
	out    io.Writer
	memory memory.Provider
	turn   TurnFunc
	logger *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for turn traces.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoop creates a loop reading user lines from in and writing the dialogue
// to out. mem holds the session history.
func NewLoop(in io.Reader, out io.Writer, mem memory.Provider, turn TurnFunc, opts ...Option) *Loop {
	l := &Loop{
		in:     in,
		out:    out,
		memory: mem,
		turn:   turn,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type inputLine struct {
	text string
	err  error
}

// Run prints the banner and serves turns until an exit keyword, the end of
// input or the cancellation of ctx. Turn failures are reported to the user
// and do not stop the loop. The returned error is nil unless ctx was
// cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.print(welcomeBanner)

	lines := make(chan inputLine)
	done := make(chan struct{})
	defer close(done)
	go l.readLines(lines, done)

	for {
		l.print(inputPrompt)

		var line inputLine
		select {
		case <-ctx.Done():
			l.print("\n" + goodbye + "\n")
			return ctx.Err()
		case line = <-lines:
		}

		input := strings.TrimSpace(line.text)
		if line.err != nil && input == "" {
			if !errors.Is(line.err, io.EOF) {
				l.logger.ErrorContext(ctx, "reading input failed", slog.String("error", line.err.Error()))
			}
			l.print("\n" + goodbye + "\n")
			return nil
		}

		if exitKeywords[strings.ToLower(input)] {
			l.print(goodbye + "\n")
			return nil
		}

		if input != "" {
			l.serveTurn(ctx, input)
		}

		// A final line without a newline is answered before stopping.
		if line.err != nil {
			l.print(goodbye + "\n")
			return nil
		}
	}
}

// serveTurn runs one turn and reports its outcome to the user.
func (l *Loop) serveTurn(ctx context.Context, input string) {
	history, err := l.memory.AllMessages(ctx)
	if err != nil {
		l.reportError(ctx, fmt.Errorf("loading history: %w", err))
		return
	}

	start := time.Now()
	output, newMessages, err := l.turn(ctx, input, history)
	if err != nil {
		l.reportError(ctx, err)
		return
	}

	l.memory.AppendMessages(ctx, newMessages...)
	l.logger.DebugContext(ctx, "turn completed",
		slog.Duration("duration", time.Since(start)),
		slog.Int("new_messages", len(newMessages)),
		slog.Int("history_length", len(history)+len(newMessages)),
	)

	l.print(fmt.Sprintf("\nAgent: %s\n", output))
}

func (l *Loop) reportError(ctx context.Context, err error) {
	l.logger.ErrorContext(ctx, "turn failed", slog.String("error", err.Error()))
	l.print(fmt.Sprintf("Error: %v\n%s\n", err, apology))
}

// readLines feeds lines into out until the reader fails or done is closed.
func (l *Loop) readLines(out chan<- inputLine, done <-chan struct{}) {
	reader := bufio.NewReader(l.in)
	for {
		text, err := reader.ReadString('\n')
		select {
		case out <- inputLine{text: text, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (l *Loop) print(s string) {
	_, _ = io.WriteString(l.out, s)
}
