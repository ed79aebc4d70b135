package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Setup interactively asks for the API keys and the model name and writes
// them to path. When path already exists the user must confirm the
// overwrite. It reports whether the file was written.
func Setup(in io.Reader, out io.Writer, path string) (bool, error) {
	reader := bufio.NewReader(in)

	if _, err := os.Stat(path); err == nil {
		answer, err := ask(reader, out, "A .env file already exists. Overwrite? (y/n): ")
		if err != nil {
			return false, err
		}
		if strings.ToLower(answer) != "y" {
			fmt.Fprintln(out, "Setup cancelled.")
			return false, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	openAIKey, err := ask(reader, out, "Enter your OpenAI API key: ")
	if err != nil {
		return false, err
	}
	braveKey, err := ask(reader, out, "Enter your Brave Search API key: ")
	if err != nil {
		return false, err
	}
	model, err := ask(reader, out, fmt.Sprintf("Enter the model name (default: %s): ", DefaultModel))
	if err != nil {
		return false, err
	}

	values := map[string]string{
		KeyOpenAIAPIKey: openAIKey,
		KeyBraveAPIKey:  braveKey,
		KeyModelName:    orDefault(model, DefaultModel),
	}
	if err := godotenv.Write(values, path); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	// The file holds secrets.
	if err := os.Chmod(path, 0o600); err != nil {
		return false, fmt.Errorf("restricting permissions of %s: %w", path, err)
	}

	location := path
	if abs, err := filepath.Abs(path); err == nil {
		location = abs
	}
	fmt.Fprintf(out, ".env file created at %s\n", location)
	fmt.Fprintln(out, "You can now run the agent with 'braveagent'")
	return true, nil
}

// ask prints prompt and returns the trimmed answer. End of input counts as
// an empty answer.
func ask(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
