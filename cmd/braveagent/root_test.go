package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"

	"github.com/leofalp/braveagent/internal/config"
)

// isolate runs the test in an empty directory with a blank configuration
// environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{
		config.KeyOpenAIAPIKey, config.KeyOpenAIBaseURL, config.KeyModelName, config.KeyBraveAPIKey,
		config.KeyAgentMaxRetries, config.KeyAgentRetryDelay, config.KeyLogLevel, config.KeyLogFormat,
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSetupCommand(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "sk-test\nbrave-test\ngpt-4.1\n", "setup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, ".env file created at") {
		t.Errorf("unexpected output %q", out)
	}

	values, err := godotenv.Read(config.DefaultEnvFile)
	if err != nil {
		t.Fatalf("reading .env: %v", err)
	}
	if values[config.KeyModelName] != "gpt-4.1" || values[config.KeyBraveAPIKey] != "brave-test" {
		t.Errorf("unexpected values %v", values)
	}
}

func TestRootRejectsArguments(t *testing.T) {
	isolate(t)

	if _, _, err := execute(t, "", "unexpected"); err == nil {
		t.Error("expected an error for extra arguments")
	}
}

func TestChat_MissingKeys(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(config.DefaultEnvFile, []byte("MODEL_NAME=gpt-4o-mini\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "")
	if !errors.Is(err, config.ErrMissingOpenAIKey) || !errors.Is(err, config.ErrMissingBraveKey) {
		t.Errorf("expected both missing-key errors, got %v", err)
	}
}

func TestChat_RunsSetupWhenEnvMissing(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "sk-test\nbrave-test\n\nexit\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"No .env file found. Running setup...",
		"Welcome to the Brave Search Agent!",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
	if _, err := os.Stat(config.DefaultEnvFile); err != nil {
		t.Errorf("expected .env to be created: %v", err)
	}
}

func TestChat_EndToEnd(t *testing.T) {
	isolate(t)

	var gotAuth, gotModel string
	var gotTools int
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body struct {
			Model string            `json:"model"`
			Tools []json.RawMessage `json:"tools"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model
		gotTools = len(body.Tools)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello from the model"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer llm.Close()

	env := "OPENAI_API_KEY=sk-test\nBRAVE_API_KEY=brave-test\nOPENAI_API_BASE_URL=" + llm.URL + "\n"
	if err := os.WriteFile(config.DefaultEnvFile, []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}

	out, logs, err := execute(t, "hello\nbye\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "\nAgent: Hello from the model\n") {
		t.Errorf("expected the model answer, got %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("unexpected authorization header %q", gotAuth)
	}
	if gotModel != config.DefaultModel {
		t.Errorf("expected model %q, got %q", config.DefaultModel, gotModel)
	}
	if gotTools != 4 {
		t.Errorf("expected 4 tools offered, got %d", gotTools)
	}
	if !strings.Contains(logs, "session_id=") {
		t.Errorf("expected session-scoped logs on stderr, got %q", logs)
	}
	for _, want := range []string{"session finished", "llm_requests=1", "total_tokens=15"} {
		if !strings.Contains(logs, want) {
			t.Errorf("expected %q in the session summary, got %q", want, logs)
		}
	}
	if strings.Contains(logs, "brave-test") || strings.Contains(logs, "sk-test") {
		t.Error("API keys must never be logged")
	}
}
