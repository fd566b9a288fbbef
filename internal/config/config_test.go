package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/csheth/plainword/internal/erruser"
)

func ptrStr(s string) *string { return &s }
func ptrBool(b bool) *bool    { return &b }
func ptrInt(n int) *int       { return &n }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	c := DefaultConfig()
	if c.Band.Min != 36.18 || c.Band.Max != 50.07 {
		t.Errorf("Band = %+v", c.Band)
	}
	if c.PageSize != 1 || c.AnchorLimit != 250 || c.MockScore != 42 {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.EffectiveProvider() != ProviderRemote {
		t.Errorf("provider = %q", c.EffectiveProvider())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoad_missingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(context.Background(), LoadOptions{Env: []string{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != _defaultPageSize || cfg.Timeout != _defaultTimeout {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoad_explicitMissingFileFails(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), LoadOptions{Path: filepath.Join(t.TempDir(), "nope.toml"), Env: []string{}})
	if err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause should be ErrNotExist, got %v", err)
	}
}

func TestLoad_toml(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.toml", `
provider = "ollama"
model = "llama3"
page_size = 3
timeout = "90s"
cache_enabled = true
cache_ttl = "3600"
journal_path = "/tmp/journal.json"

[band]
min = 30.0
max = 60.0
`)
	cfg, err := Load(context.Background(), LoadOptions{Path: path, Env: []string{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOllama || cfg.Model != "llama3" || cfg.PageSize != 3 {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Band != (Band{Min: 30, Max: 60}) {
		t.Errorf("Band = %+v", cfg.Band)
	}
	if cfg.Timeout != 90*time.Second || cfg.CacheTTL != time.Hour || !cfg.CacheEnabled {
		t.Errorf("durations/cache = %v %v %v", cfg.Timeout, cfg.CacheTTL, cfg.CacheEnabled)
	}
	if cfg.AnchorLimit != _defaultAnchorLimit {
		t.Errorf("AnchorLimit = %d, want default", cfg.AnchorLimit)
	}
}

func TestLoad_yaml(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.yaml", `
use_mock: true
mock_score: 40
band:
  min: 35
  max: 45
anchor_limit: 120
`)
	cfg, err := Load(context.Background(), LoadOptions{Path: path, Env: []string{}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EffectiveProvider() != ProviderMock || cfg.MockScore != 40 || cfg.AnchorLimit != 120 {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Band != (Band{Min: 35, Max: 45}) {
		t.Errorf("Band = %+v", cfg.Band)
	}
}

func TestLoad_invalidFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.toml", "provider = [")
	_, err := Load(context.Background(), LoadOptions{Path: path, Env: []string{}})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if erruser.Details(err) == "" {
		t.Errorf("expected the parser error as details, got %v", err)
	}
}

func TestLoad_envOverridesFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.toml", "provider = \"ollama\"\npage_size = 2\n")
	cfg, err := Load(context.Background(), LoadOptions{
		Path: path,
		Env: []string{
			"PLAINWORD_PROVIDER=openai",
			"PLAINWORD_PAGE_SIZE=4",
			"PLAINWORD_BAND_MIN=20.5",
			"PLAINWORD_TIMEOUT=15",
			"PLAINWORD_CACHE_ENABLED=yes",
			"OPENAI_API_KEY=sk-test",
			"UNRELATED",
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOpenAI || cfg.PageSize != 4 || cfg.Band.Min != 20.5 {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Timeout != 15*time.Second || !cfg.CacheEnabled || cfg.APIKey != "sk-test" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoad_invalidEnv(t *testing.T) {
	t.Parallel()
	cases := []string{
		"PLAINWORD_PAGE_SIZE=many",
		"PLAINWORD_BAND_MAX=high",
		"PLAINWORD_USE_MOCK=maybe",
		"PLAINWORD_TIMEOUT=soon",
	}
	for _, kv := range cases {
		_, err := Load(context.Background(), LoadOptions{Path: writeFile(t, "c.toml", ""), Env: []string{kv}})
		if err == nil {
			t.Errorf("%s: expected error", kv)
		}
	}
}

func TestLoad_overridesWin(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.toml", "use_mock = true\ncache_enabled = true\n")
	cfg, err := Load(context.Background(), LoadOptions{
		Path: path,
		Env:  []string{"PLAINWORD_ENDPOINT=http://env/prompt"},
		Overrides: &Overrides{
			Provider: ptrStr("remote"),
			Endpoint: ptrStr("http://flag/prompt"),
			PageSize: ptrInt(2),
			NoCache:  ptrBool(true),
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EffectiveProvider() != ProviderRemote {
		t.Errorf("provider flag should clear use_mock, got %q", cfg.EffectiveProvider())
	}
	if cfg.Endpoint != "http://flag/prompt" || cfg.PageSize != 2 || cfg.CacheEnabled {
		t.Errorf("got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cases := map[string]func(*Config){
		"provider":  func(c *Config) { c.Provider = "fax" },
		"band":      func(c *Config) { c.Band = Band{Min: 60, Max: 40} },
		"page size": func(c *Config) { c.PageSize = 0 },
		"anchor":    func(c *Config) { c.AnchorLimit = 0 },
		"timeout":   func(c *Config) { c.Timeout = 0 },
	}
	for name, mutate := range cases {
		c := DefaultConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
