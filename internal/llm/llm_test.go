package llm

import (
	"net/http"
	"testing"
	"time"
)

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: 42 * time.Second}
	if got := pickHTTPClient(custom); got != custom {
		t.Fatalf("expected custom client to be returned")
	}
}

func TestPickHTTPClientUsesLongerTimeout(t *testing.T) {
	client := pickHTTPClient(nil)
	if client.Timeout != defaultLLMHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultLLMHTTPTimeout, client.Timeout)
	}
}

func TestNewFromEnvDefaultsToOllama(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://ollama.internal:11434/")
	t.Setenv("OLLAMA_MODEL", "")
	client, err := NewFromEnv(Config{})
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	oc, ok := client.(*ollamaClient)
	if !ok {
		t.Fatalf("expected ollama client, got %T", client)
	}
	if oc.host != "http://ollama.internal:11434" {
		t.Fatalf("host not trimmed: %s", oc.host)
	}
	if oc.model != defaultOllamaModel {
		t.Fatalf("unexpected model %s", oc.model)
	}
}

func TestNewFromEnvOpenAINeedsKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewFromEnv(Config{Provider: ProviderOpenAI}); err == nil {
		t.Fatal("expected an error without an API key")
	}
	client, err := NewFromEnv(Config{Provider: ProviderOpenAI, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	if client.Name() != "OpenAI (gpt-4o-mini)" {
		t.Fatalf("unexpected name %s", client.Name())
	}
}

func TestNewFromEnvRejectsUnknownProvider(t *testing.T) {
	if _, err := NewFromEnv(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestCleanRewrite(t *testing.T) {
	cases := map[string]string{
		"Dit is kort.":                     "Dit is kort.",
		"\n\n\"Dit is kort.\"\nUitleg: ...": "Dit is kort.",
		"Herschreven: Dit is kort.":        "Dit is kort.",
	}
	for in, want := range cases {
		got, err := cleanRewrite(in)
		if err != nil {
			t.Fatalf("cleanRewrite(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("cleanRewrite(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := cleanRewrite("  \n \"\" "); err == nil {
		t.Fatal("expected an error for an empty rewrite")
	}
}
