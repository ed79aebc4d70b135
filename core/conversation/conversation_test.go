package conversation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/leofalp/braveagent/core/retry"
	"github.com/leofalp/braveagent/patterns/react"
	"github.com/leofalp/braveagent/providers/ai"
	"github.com/leofalp/braveagent/providers/memory/inmemory"
)

// recordingTurn answers every input and records what it was given.
type recordingTurn struct {
	inputs    []string
	histories [][]ai.Message
	fail      map[string]error
}

func (r *recordingTurn) turn(_ context.Context, input string, history []ai.Message) (string, []ai.Message, error) {
	r.inputs = append(r.inputs, input)
	r.histories = append(r.histories, history)
	if err := r.fail[input]; err != nil {
		return "", nil, err
	}
	return "echo " + input, []ai.Message{
		{Role: ai.RoleUser, Content: input},
		{Role: ai.RoleAssistant, Content: "echo " + input},
	}, nil
}

func runLoop(t *testing.T, input string, turn *recordingTurn) (string, *inmemory.ArrayMemory) {
	t.Helper()

	var out bytes.Buffer
	mem := inmemory.New()
	loop := NewLoop(strings.NewReader(input), &out, mem, turn.turn)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String(), mem
}

func TestLoop_Banner(t *testing.T) {
	out, _ := runLoop(t, "exit\n", &recordingTurn{})

	if !strings.HasPrefix(out, "Welcome to the Brave Search Agent!\nType 'exit' to quit.\n\nYou: ") {
		t.Errorf("unexpected banner: %q", out)
	}
}

func TestLoop_ExitKeywords(t *testing.T) {
	for _, keyword := range []string{"exit", "quit", "bye", "EXIT", "  Bye  ", "Quit"} {
		t.Run(keyword, func(t *testing.T) {
			turn := &recordingTurn{}
			out, _ := runLoop(t, keyword+"\nnever read\n", turn)

			if !strings.HasSuffix(out, "Goodbye!\n") {
				t.Errorf("expected goodbye, got %q", out)
			}
			if len(turn.inputs) != 0 {
				t.Errorf("exit keyword must not run a turn, got %v", turn.inputs)
			}
		})
	}
}

func TestLoop_TurnsShareHistory(t *testing.T) {
	turn := &recordingTurn{}
	out, mem := runLoop(t, "first\nsecond\nexit\n", turn)

	if !strings.Contains(out, "\nAgent: echo first\n") || !strings.Contains(out, "\nAgent: echo second\n") {
		t.Errorf("expected both answers, got %q", out)
	}
	if len(turn.histories) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turn.histories))
	}
	if len(turn.histories[0]) != 0 || len(turn.histories[1]) != 2 {
		t.Errorf("expected the second turn to see the first turn's messages, got %d and %d",
			len(turn.histories[0]), len(turn.histories[1]))
	}

	count, _ := mem.Count(context.Background())
	if count != 4 {
		t.Errorf("expected 4 stored messages, got %d", count)
	}
}

func TestLoop_BlankLinesIgnored(t *testing.T) {
	turn := &recordingTurn{}
	runLoop(t, "\n   \nhello\nexit\n", turn)

	if len(turn.inputs) != 1 || turn.inputs[0] != "hello" {
		t.Errorf("expected only the non-blank input to run, got %v", turn.inputs)
	}
}

func TestLoop_InputIsTrimmed(t *testing.T) {
	turn := &recordingTurn{}
	runLoop(t, "  what is go?  \r\nexit\n", turn)

	if len(turn.inputs) != 1 || turn.inputs[0] != "what is go?" {
		t.Errorf("unexpected inputs %q", turn.inputs)
	}
}

func TestLoop_FailureReportedAndLoopContinues(t *testing.T) {
	turn := &recordingTurn{fail: map[string]error{"bad": errors.New("model unavailable")}}
	out, mem := runLoop(t, "bad\ngood\nexit\n", turn)

	wantError := "Error: model unavailable\nSorry, I encountered an error. Please try again with a different query.\n"
	if !strings.Contains(out, wantError) {
		t.Errorf("expected the error report, got %q", out)
	}
	if !strings.Contains(out, "\nAgent: echo good\n") {
		t.Errorf("expected the loop to continue after a failure, got %q", out)
	}

	messages, _ := mem.AllMessages(context.Background())
	if len(messages) != 2 || messages[0].Content != "good" {
		t.Errorf("failed turn must not touch the history, got %+v", messages)
	}
}

func TestLoop_EOFEndsLoop(t *testing.T) {
	turn := &recordingTurn{}
	out, _ := runLoop(t, "hello\n", turn)

	if len(turn.inputs) != 1 {
		t.Errorf("expected one turn, got %v", turn.inputs)
	}
	if !strings.HasSuffix(out, "Goodbye!\n") {
		t.Errorf("expected goodbye at EOF, got %q", out)
	}
}

func TestLoop_FinalLineWithoutNewline(t *testing.T) {
	turn := &recordingTurn{}
	out, _ := runLoop(t, "last question", turn)

	if len(turn.inputs) != 1 || turn.inputs[0] != "last question" {
		t.Errorf("expected the final line to be answered, got %v", turn.inputs)
	}
	if !strings.HasSuffix(out, "Goodbye!\n") {
		t.Errorf("expected goodbye, got %q", out)
	}
}

func TestLoop_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	loop := NewLoop(pr, &out, inmemory.New(), (&recordingTurn{}).turn)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := loop.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

// flakyRunner fails once, then answers.
type flakyRunner struct {
	calls int
}

func (f *flakyRunner) Run(_ context.Context, input string, _ struct{}, _ []ai.Message) (*react.Result, error) {
	f.calls++
	if f.calls == 1 {
		return nil, errors.New("transient")
	}
	return &react.Result{
		Output:      "ok",
		NewMessages: []ai.Message{{Role: ai.RoleUser, Content: input}, {Role: ai.RoleAssistant, Content: "ok"}},
	}, nil
}

func TestRetryTurn(t *testing.T) {
	runner := &flakyRunner{}
	turn := RetryTurn[struct{}](runner, struct{}{}, retry.Config{MaxRetries: 2, Delay: time.Millisecond})

	output, messages, err := turn(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "ok" || len(messages) != 2 || runner.calls != 2 {
		t.Errorf("unexpected turn result %q %+v after %d calls", output, messages, runner.calls)
	}

	failing := RetryTurn[struct{}](&alwaysFailing{}, struct{}{}, retry.Config{MaxRetries: 1, Delay: time.Millisecond})
	if _, _, err := failing(context.Background(), "hi", nil); !errors.Is(err, retry.ErrRetryExhausted) {
		t.Errorf("expected ErrRetryExhausted, got %v", err)
	}
}

type alwaysFailing struct{}

func (alwaysFailing) Run(context.Context, string, struct{}, []ai.Message) (*react.Result, error) {
	return nil, errors.New("down")
}
