package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/leofalp/braveagent/core/cost"
	"github.com/leofalp/braveagent/internal/logging"
)

// DefaultEnvFile is the configuration file looked up in the working directory.
const DefaultEnvFile = ".env"

// Environment keys.
const (
	KeyOpenAIAPIKey           = "OPENAI_API_KEY"
	KeyOpenAIBaseURL          = "OPENAI_API_BASE_URL"
	KeyModelName              = "MODEL_NAME"
	KeyBraveAPIKey            = "BRAVE_API_KEY"
	KeyBraveCountry           = "BRAVE_COUNTRY"
	KeyBraveSearchLang        = "BRAVE_SEARCH_LANG"
	KeyBraveUILang            = "BRAVE_UI_LANG"
	KeyBraveSafeSearch        = "BRAVE_SAFESEARCH"
	KeyBraveRequestsPerSecond = "BRAVE_REQUESTS_PER_SECOND"
	KeyAgentMaxRetries        = "AGENT_MAX_RETRIES"
	KeyAgentRetryDelay        = "AGENT_RETRY_DELAY"
	KeyAgentMaxIterations     = "AGENT_MAX_ITERATIONS"
	KeyLLMTimeout             = "LLM_TIMEOUT"
	KeyLogLevel               = "LOG_LEVEL"
	KeyLogFormat              = "LOG_FORMAT"

	KeyModelInputCost  = "MODEL_INPUT_COST_PER_MILLION"
	KeyModelOutputCost = "MODEL_OUTPUT_COST_PER_MILLION"
	KeyModelCachedCost = "MODEL_CACHED_COST_PER_MILLION"
)

// Defaults.
const (
	DefaultModel                  = "gpt-4o-mini"
	DefaultOpenAIBaseURL          = "https://api.openai.com/v1"
	DefaultBraveRequestsPerSecond = 1.0
	DefaultMaxRetries             = 3
	DefaultRetryDelay             = time.Second
	DefaultMaxIterations          = 10
	DefaultLLMTimeout             = 120 * time.Second
)

var (
	// ErrMissingOpenAIKey is reported by Validate when OPENAI_API_KEY is unset.
	ErrMissingOpenAIKey = errors.New("OPENAI_API_KEY not found in .env file or environment")
	// ErrMissingBraveKey is reported by Validate when BRAVE_API_KEY is unset.
	ErrMissingBraveKey = errors.New("BRAVE_API_KEY not found in .env file or environment")
)

// Config is the resolved application configuration. It is built once at
// startup and passed down explicitly.
type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string

	BraveAPIKey            string
	BraveCountry           string // empty selects the search client default
	BraveSearchLang        string
	BraveUILang            string
	BraveSafeSearch        string
	BraveRequestsPerSecond float64 // 0 disables pacing

	MaxRetries    int
	RetryDelay    time.Duration
	MaxIterations int
	LLMTimeout    time.Duration

	// ModelCost prices the session summary. Zero when not configured.
	ModelCost cost.ModelCost

	LogLevel  slog.Level
	LogFormat logging.Format
}

// Load reads envFile, overlays the non-empty process environment values and
// applies defaults. A missing file is not an error. The process environment
// is not modified.
func Load(envFile string) (*Config, error) {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			values = fileValues
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(values[key])
	}

	cfg := &Config{
		OpenAIAPIKey:    lookup(KeyOpenAIAPIKey),
		OpenAIBaseURL:   orDefault(lookup(KeyOpenAIBaseURL), DefaultOpenAIBaseURL),
		Model:           orDefault(lookup(KeyModelName), DefaultModel),
		BraveAPIKey:     lookup(KeyBraveAPIKey),
		BraveCountry:    lookup(KeyBraveCountry),
		BraveSearchLang: lookup(KeyBraveSearchLang),
		BraveUILang:     lookup(KeyBraveUILang),
		BraveSafeSearch: lookup(KeyBraveSafeSearch),
	}

	var errs []error
	var err error

	if cfg.BraveRequestsPerSecond, err = parseFloat(KeyBraveRequestsPerSecond, lookup(KeyBraveRequestsPerSecond), DefaultBraveRequestsPerSecond); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxRetries, err = parseInt(KeyAgentMaxRetries, lookup(KeyAgentMaxRetries), DefaultMaxRetries); err != nil {
		errs = append(errs, err)
	}
	if cfg.RetryDelay, err = parseDuration(KeyAgentRetryDelay, lookup(KeyAgentRetryDelay), DefaultRetryDelay); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxIterations, err = parseInt(KeyAgentMaxIterations, lookup(KeyAgentMaxIterations), DefaultMaxIterations); err != nil {
		errs = append(errs, err)
	}
	if cfg.LLMTimeout, err = parseDuration(KeyLLMTimeout, lookup(KeyLLMTimeout), DefaultLLMTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.ModelCost.InputCostPerMillion, err = parseFloat(KeyModelInputCost, lookup(KeyModelInputCost), 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.ModelCost.OutputCostPerMillion, err = parseFloat(KeyModelOutputCost, lookup(KeyModelOutputCost), 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.ModelCost.CachedInputCostPerMillion, err = parseFloat(KeyModelCachedCost, lookup(KeyModelCachedCost), 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.LogLevel, err = ParseLogLevel(lookup(KeyLogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s: %w", KeyLogLevel, err))
	}
	if cfg.LogFormat, err = logging.ParseFormat(lookup(KeyLogFormat)); err != nil {
		errs = append(errs, fmt.Errorf("invalid %s: %w", KeyLogFormat, err))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required key.
func (c *Config) Validate() error {
	var errs []error
	if c.OpenAIAPIKey == "" {
		errs = append(errs, ErrMissingOpenAIKey)
	}
	if c.BraveAPIKey == "" {
		errs = append(errs, ErrMissingBraveKey)
	}
	return errors.Join(errs...)
}

// ParseLogLevel parses debug, info, warn (or warning) and error, in any case.
// An empty value means info.
func ParseLogLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return slog.LevelInfo, nil
	case "warning":
		return slog.LevelWarn, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func parseInt(key, raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v <= 0 {
		return fallback, fmt.Errorf("invalid %s: must be positive, got %d", key, v)
	}
	return v, nil
}

func parseFloat(key, raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v < 0 {
		return fallback, fmt.Errorf("invalid %s: must not be negative, got %v", key, v)
	}
	return v, nil
}

// parseDuration accepts Go durations ("90s", "2m") and plain seconds ("90").
func parseDuration(key, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		if seconds <= 0 {
			return fallback, fmt.Errorf("invalid %s: must be positive, got %s", key, raw)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return fallback, fmt.Errorf("invalid %s: must be positive, got %s", key, raw)
	}
	return d, nil
}
