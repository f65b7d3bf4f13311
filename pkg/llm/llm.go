// Package llm provides the text-generation clients used for file analysis and README synthesis.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured for the selected provider.
	ErrMissingAPIKey = errors.New("llm: missing API key")
	// ErrEmptyResponse is returned when the service answers without any text.
	ErrEmptyResponse = errors.New("llm: empty response")
	// ErrExternalService marks failures of the remote text-generation service.
	ErrExternalService = errors.New("llm: external service failure")
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config configures the text-generation service.
type Config struct {
	Provider            string        `mapstructure:"provider" jsonschema:"title=Provider,description=Text-generation backend,enum=openai,enum=gemini,default=openai"`
	BaseURL             string        `mapstructure:"base_url" jsonschema:"title=BaseURL,description=Base URL of the OpenAI-compatible API"`
	APIKey              string        `mapstructure:"api_key" jsonschema:"title=APIKey,description=API key; falls back to OPENAI_API_KEY or GEMINI_API_KEY"`
	Model               string        `mapstructure:"model" jsonschema:"title=Model,description=Model name"`
	Temperature         float64       `mapstructure:"temperature" jsonschema:"title=Temperature,description=Temperature for README generation,default=0.7"`
	AnalysisTemperature float64       `mapstructure:"analysis_temperature" jsonschema:"title=AnalysisTemperature,description=Temperature for per-file analysis,default=0.3"`
	MaxTokens           int           `mapstructure:"max_tokens" jsonschema:"title=MaxTokens,description=Maximum tokens per response,default=4096"`
	Timeout             time.Duration `mapstructure:"timeout" jsonschema:"title=Timeout,description=Per-request timeout"`
	Retries             int           `mapstructure:"retries" jsonschema:"title=Retries,description=Attempts per request including the first,default=3"`
	RetryBackoff        time.Duration `mapstructure:"retry_backoff" jsonschema:"title=RetryBackoff,description=Initial backoff between attempts"`
	Concurrency         int           `mapstructure:"concurrency" jsonschema:"title=Concurrency,description=Parallel per-file analysis calls,default=1"`
	MaxFileChars        int           `mapstructure:"max_file_chars" jsonschema:"title=MaxFileChars,description=File content is truncated to this many characters in analysis prompts,default=10000"`
	SystemPrompt        string        `mapstructure:"system_prompt" jsonschema:"title=SystemPrompt,description=System prompt for README generation"`
}

// DefaultSystemPrompt is the system prompt used when none is configured.
const DefaultSystemPrompt = `You are a professional README generator. Your task is to analyze a code repository
and write a complete, professional README.md. Focus on the project's main features, installation steps,
usage, technology stack and architecture. Keep the README clear, well structured and detailed enough
for users to understand and use the project.`

// DefaultConfig returns the built-in service settings.
func DefaultConfig() Config {
	return Config{
		Provider:            ProviderOpenAI,
		BaseURL:             "https://api.openai.com/v1",
		Model:               "gpt-4o",
		Temperature:         0.7,
		AnalysisTemperature: 0.3,
		MaxTokens:           4096,
		Timeout:             2 * time.Minute,
		Retries:             3,
		RetryBackoff:        time.Second,
		Concurrency:         1,
		MaxFileChars:        10000,
		SystemPrompt:        DefaultSystemPrompt,
	}
}

// Request is a single completion request.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client is a text-generation backend.
type Client interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
	Close() error
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Name() string { return "func" }

func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) { return f(ctx, req) }

func (f ClientFunc) Close() error { return nil }

// StatusError is a non-2xx answer from the service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm: status %d: %s", e.Code, strings.TrimSpace(e.Body))
}

func (e *StatusError) Unwrap() error { return ErrExternalService }

// Temporary reports whether retrying may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == 429 || e.Code >= 500
}

// ResolveAPIKey returns the configured key, falling back to the provider's environment variable.
func ResolveAPIKey(cfg Config) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		if k := os.Getenv("GEMINI_API_KEY"); k != "" {
			return k
		}
		return os.Getenv("GOOGLE_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// New builds the client for cfg.Provider wrapped in the retry policy.
func New(ctx context.Context, cfg Config) (Client, error) {
	cfg = cfg.withDefaults()
	key := ResolveAPIKey(cfg)
	if key == "" {
		return nil, fmt.Errorf("%w for provider %s", ErrMissingAPIKey, cfg.Provider)
	}
	cfg.APIKey = key

	var c Client
	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		c = NewOpenAIClient(cfg)
	case ProviderGemini:
		g, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c = g
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
	return WithRetry(c, cfg.Retries, cfg.RetryBackoff), nil
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Model == "" {
		if strings.EqualFold(c.Provider, ProviderGemini) {
			c.Model = "gemini-2.5-flash"
		} else {
			c.Model = def.Model
		}
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Retries <= 0 {
		c.Retries = def.Retries
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = def.RetryBackoff
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = def.SystemPrompt
	}
	return c
}
