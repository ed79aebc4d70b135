package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
)

func TestSetup_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	var out bytes.Buffer

	written, err := Setup(strings.NewReader("sk-test\nbrave-test\n\n"), &out, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !written {
		t.Fatal("expected the file to be written")
	}

	values, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if values[KeyOpenAIAPIKey] != "sk-test" || values[KeyBraveAPIKey] != "brave-test" {
		t.Errorf("unexpected keys: %v", values)
	}
	if values[KeyModelName] != DefaultModel {
		t.Errorf("expected the default model, got %q", values[KeyModelName])
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}

	prompts := out.String()
	for _, want := range []string{
		"Enter your OpenAI API key: ",
		"Enter your Brave Search API key: ",
		"Enter the model name (default: gpt-4o-mini): ",
		".env file created at ",
	} {
		if !strings.Contains(prompts, want) {
			t.Errorf("expected output to contain %q, got %q", want, prompts)
		}
	}
}

func TestSetup_CustomModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	if _, err := Setup(strings.NewReader("a\nb\n  gpt-4.1  \n"), &bytes.Buffer{}, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values, _ := godotenv.Read(path)
	if values[KeyModelName] != "gpt-4.1" {
		t.Errorf("expected the trimmed custom model, got %q", values[KeyModelName])
	}
}

func TestSetup_OverwritePrompt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		written   bool
		wantKey   string
		wantInOut string
	}{
		{"declined", "n\n", false, "old", "Setup cancelled."},
		{"empty answer", "\n", false, "old", "Setup cancelled."},
		{"accepted", "Y\nnew\nbrave\n\n", true, "new", ".env file created at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(path, []byte("OPENAI_API_KEY=old\n"), 0o600); err != nil {
				t.Fatalf("seeding file: %v", err)
			}

			var out bytes.Buffer
			written, err := Setup(strings.NewReader(tt.input), &out, path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if written != tt.written {
				t.Errorf("written = %v, want %v", written, tt.written)
			}
			if !strings.HasPrefix(out.String(), "A .env file already exists. Overwrite? (y/n): ") {
				t.Errorf("expected the overwrite prompt, got %q", out.String())
			}
			if !strings.Contains(out.String(), tt.wantInOut) {
				t.Errorf("expected %q in output, got %q", tt.wantInOut, out.String())
			}

			values, _ := godotenv.Read(path)
			if values[KeyOpenAIAPIKey] != tt.wantKey {
				t.Errorf("expected key %q, got %q", tt.wantKey, values[KeyOpenAIAPIKey])
			}
		})
	}
}

func TestSetup_ThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")

	if _, err := Setup(strings.NewReader("sk-x\nbrave-x\n\n"), &bytes.Buffer{}, path); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected the written file to validate, got %v", err)
	}
}
