package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leofalp/braveagent/core/assistant"
	"github.com/leofalp/braveagent/core/client"
	"github.com/leofalp/braveagent/core/client/middleware"
	"github.com/leofalp/braveagent/core/conversation"
	"github.com/leofalp/braveagent/core/overview"
	"github.com/leofalp/braveagent/core/retry"
	"github.com/leofalp/braveagent/internal/config"
	"github.com/leofalp/braveagent/internal/logging"
	"github.com/leofalp/braveagent/patterns/react"
	"github.com/leofalp/braveagent/providers/ai/openai"
	"github.com/leofalp/braveagent/providers/memory/inmemory"
	"github.com/leofalp/braveagent/providers/tool/bravesearch"
	"github.com/leofalp/braveagent/providers/tool/webfetch"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "braveagent",
		Short: "Chat with an assistant that searches the web with Brave Search",
		Long: `braveagent starts an interactive chat with an AI assistant that can search
the web through the Brave Search API and read web pages.

Configuration is read from a .env file in the working directory, with
process environment variables taking precedence. When the file is missing
it is created interactively before the chat starts.

Type 'exit', 'quit' or 'bye' to leave the chat.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			return runChat(cmd.Context(), in, cmd.OutOrStdout(), cmd.ErrOrStderr(), config.DefaultEnvFile)
		},
	}

	root.AddCommand(newSetupCommand())
	return root
}

func newSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the .env file with the API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := config.Setup(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultEnvFile)
			return err
		},
	}
}

// runChat makes sure the configuration exists, wires the assistant and runs
// the conversation until the user leaves.
func runChat(ctx context.Context, in io.Reader, out, errOut io.Writer, envFile string) error {
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No .env file found. Running setup...")
		written, err := config.Setup(in, out, envFile)
		if err != nil {
			return err
		}
		if !written {
			return nil
		}
		fmt.Fprintln(out)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration (run 'braveagent setup'): %w", err)
	}

	logger := logging.New(errOut, cfg.LogFormat, cfg.LogLevel).
		With(slog.String("session_id", uuid.NewString()))

	usage := overview.New(&cfg.ModelCost)
	loop, err := buildLoop(cfg, in, out, logger, usage)
	if err != nil {
		return err
	}

	logger.Info("session started", slog.String("model", cfg.Model))
	err = loop.Run(ctx)
	logger.Info("session finished", usage.Summary().LogAttrs()...)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildLoop assembles the search dependencies, the model client, the agent
// and the conversation loop from cfg. Model calls are recorded in usage.
func buildLoop(cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger, usage *overview.Overview) (*conversation.Loop, error) {
	searchClient := bravesearch.NewClient(cfg.BraveAPIKey,
		bravesearch.WithRateLimit(cfg.BraveRequestsPerSecond),
		bravesearch.WithDefaults(bravesearch.SearchOptions{
			Country:    cfg.BraveCountry,
			SearchLang: cfg.BraveSearchLang,
			UILang:     cfg.BraveUILang,
			SafeSearch: cfg.BraveSafeSearch,
		}),
		bravesearch.WithLogger(logger),
	)
	deps := assistant.NewBraveDeps(searchClient, webfetch.NewFetcher(webfetch.WithLogger(logger)))

	provider := openai.NewOpenAIProvider().
		WithAPIKey(cfg.OpenAIAPIKey).
		WithBaseURL(cfg.OpenAIBaseURL)

	logLevel := middleware.LogLevelStandard
	if cfg.LogLevel <= slog.LevelDebug {
		logLevel = middleware.LogLevelVerbose
	}

	llm, err := client.New(provider,
		client.WithModel(cfg.Model),
		client.WithSystemPrompt(assistant.SystemPrompt),
		client.WithMiddleware(
			usage.Middleware(),
			middleware.NewLoggingMiddleware(logger, logLevel),
			middleware.NewTimeoutMiddleware(cfg.LLMTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}

	agent, err := react.New(llm, assistant.Toolset(logger),
		react.WithMaxIterations(cfg.MaxIterations),
		react.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}

	turn := conversation.RetryTurn[assistant.Deps](agent, deps, retry.Config{
		MaxRetries: cfg.MaxRetries,
		Delay:      cfg.RetryDelay,
		Logger:     logger,
	})

	return conversation.NewLoop(in, out, inmemory.New(), turn, conversation.WithLogger(logger)), nil
}
