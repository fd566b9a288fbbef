package llm

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultOllamaModel = "ministral-3:latest"
	defaultOpenAIModel = "gpt-4o-mini"
	// A single sentence never needs more than this; longer input is clipped
	// so a pasted wall of text cannot blow up the prompt.
	maxSentenceChars = 2_000
)

const defaultLLMHTTPTimeout = 3 * time.Minute

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config describes how to build an LLM client.
type Config struct {
	Provider   string
	Model      string
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// Client rewrites one sentence into plain language.
type Client interface {
	Simplify(ctx context.Context, sentence string) (string, error)
	Name() string
}

// NewFromEnv inspects the config and environment variables to build a client.
// OpenAI needs an API key from the config or OPENAI_API_KEY; Ollama falls
// back to OLLAMA_HOST and OLLAMA_MODEL.
func NewFromEnv(cfg Config) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI:
		key := cfg.APIKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
		}
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return newOpenAIClient(key, model, cfg.Endpoint, pickHTTPClient(cfg.HTTPClient)), nil
	case "", ProviderOllama:
		host := cfg.Endpoint
		if host == "" {
			if env := os.Getenv("OLLAMA_HOST"); env != "" {
				host = env
			} else {
				host = "http://localhost:11434"
			}
		}
		model := cfg.Model
		if model == "" {
			if env := os.Getenv("OLLAMA_MODEL"); env != "" {
				model = env
			} else {
				model = defaultOllamaModel
			}
		}
		return &ollamaClient{
			host:   strings.TrimRight(host, "/"),
			model:  model,
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	default:
		return nil, errors.New("unknown llm provider " + cfg.Provider)
	}
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Local models can take well over a minute on a cold start; the caller's
	// context handles cancellation.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}
