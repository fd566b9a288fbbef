// Package config loads PlainWord settings with a fixed precedence:
// CLI flags > environment variables > config file > defaults.
//
// The config file defaults to <user config dir>/plainword/config.toml. A
// .yaml or .yml extension switches the parser to YAML.
//
// Environment variables:
//   - PLAINWORD_PROVIDER, PLAINWORD_USE_MOCK, PLAINWORD_ENDPOINT, PLAINWORD_MODEL
//   - PLAINWORD_BAND_MIN, PLAINWORD_BAND_MAX, PLAINWORD_PAGE_SIZE, PLAINWORD_ANCHOR_LIMIT
//   - PLAINWORD_MOCK_SCORE, PLAINWORD_TIMEOUT (Go duration or integer seconds)
//   - PLAINWORD_CACHE_ENABLED, PLAINWORD_CACHE_DIR, PLAINWORD_CACHE_TTL
//   - PLAINWORD_JOURNAL_PATH
//   - OPENAI_API_KEY (openai provider only)
//
// OLLAMA_HOST and OLLAMA_MODEL are read by the Ollama client when endpoint
// and model are left empty.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/csheth/plainword/internal/erruser"
)

const (
	ProviderMock   = "mock"
	ProviderRemote = "remote"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Band is the closed score interval a rewrite must land in to be reviewed.
type Band struct {
	Min float64 `toml:"min" yaml:"min"`
	Max float64 `toml:"max" yaml:"max"`
}

// Config holds all PlainWord settings. An empty Endpoint means the
// provider's default.
type Config struct {
	Provider     string
	UseMock      bool
	Endpoint     string
	Model        string
	APIKey       string
	Band         Band
	PageSize     int
	AnchorLimit  int
	MockScore    float64
	Timeout      time.Duration
	CacheEnabled bool
	CacheDir     string
	CacheTTL     time.Duration
	JournalPath  string
}

// Overrides carries CLI flag values. A non-nil pointer wins over every other
// layer.
type Overrides struct {
	Provider    *string
	UseMock     *bool
	Endpoint    *string
	Model       *string
	PageSize    *int
	JournalPath *string
	NoCache     *bool
}

// LoadOptions configures Load. All fields are optional.
type LoadOptions struct {
	// Path is the config file. When empty the user config dir is used and a
	// missing file is fine; an explicit path must exist.
	Path string
	// Env is the key=value environment; os.Environ() when nil.
	Env       []string
	Overrides *Overrides
}

const (
	_defaultProvider    = ProviderRemote
	_defaultBandMin     = 36.18
	_defaultBandMax     = 50.07
	_defaultPageSize    = 1
	_defaultAnchorLimit = 250
	_defaultMockScore   = 42
	_defaultTimeout     = 60 * time.Second
	_defaultCacheTTL    = 7 * 24 * time.Hour
)

var validProviders = map[string]struct{}{
	ProviderMock: {}, ProviderRemote: {}, ProviderOllama: {}, ProviderOpenAI: {},
}

// DefaultConfig returns the built-in settings (no I/O).
func DefaultConfig() Config {
	return Config{
		Provider:    _defaultProvider,
		Band:        Band{Min: _defaultBandMin, Max: _defaultBandMax},
		PageSize:    _defaultPageSize,
		AnchorLimit: _defaultAnchorLimit,
		MockScore:   _defaultMockScore,
		Timeout:     _defaultTimeout,
		CacheTTL:    _defaultCacheTTL,
	}
}

// EffectiveProvider folds use_mock into the provider name.
func (c Config) EffectiveProvider() string {
	if c.UseMock {
		return ProviderMock
	}
	return strings.ToLower(strings.TrimSpace(c.Provider))
}

// DefaultPath is <user config dir>/plainword/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "plainword", "config.toml"), nil
}

// Load builds the configuration from all layers and validates it.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	cfg := DefaultConfig()

	path := opts.Path
	required := path != ""
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, erruser.New("Could not determine config directory.", err)
		}
		path = p
	}
	if err := mergeFile(&cfg, path, required); err != nil {
		return nil, err
	}
	if err := applyEnv(&cfg, opts.Env); err != nil {
		return nil, err
	}
	applyOverrides(&cfg, opts.Overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c Config) Validate() error {
	if _, ok := validProviders[c.EffectiveProvider()]; !ok {
		return erruser.New("Invalid provider; use mock, remote, ollama or openai.", fmt.Errorf("provider %q", c.Provider))
	}
	if c.Band.Min > c.Band.Max {
		return erruser.New("Invalid band; band.min must not exceed band.max.", fmt.Errorf("band [%v, %v]", c.Band.Min, c.Band.Max))
	}
	if c.PageSize < 1 {
		return erruser.New("page_size must be at least 1.", fmt.Errorf("page_size %d", c.PageSize))
	}
	if c.AnchorLimit < 1 {
		return erruser.New("anchor_limit must be at least 1.", fmt.Errorf("anchor_limit %d", c.AnchorLimit))
	}
	if c.Timeout <= 0 {
		return erruser.New("timeout must be positive.", fmt.Errorf("timeout %s", c.Timeout))
	}
	return nil
}

type fileConfig struct {
	Provider     *string  `toml:"provider" yaml:"provider"`
	UseMock      *bool    `toml:"use_mock" yaml:"use_mock"`
	Endpoint     *string  `toml:"endpoint" yaml:"endpoint"`
	Model        *string  `toml:"model" yaml:"model"`
	Band         *Band    `toml:"band" yaml:"band"`
	PageSize     *int     `toml:"page_size" yaml:"page_size"`
	AnchorLimit  *int     `toml:"anchor_limit" yaml:"anchor_limit"`
	MockScore    *float64 `toml:"mock_score" yaml:"mock_score"`
	Timeout      *string  `toml:"timeout" yaml:"timeout"`
	CacheEnabled *bool    `toml:"cache_enabled" yaml:"cache_enabled"`
	CacheDir     *string  `toml:"cache_dir" yaml:"cache_dir"`
	CacheTTL     *string  `toml:"cache_ttl" yaml:"cache_ttl"`
	JournalPath  *string  `toml:"journal_path" yaml:"journal_path"`
}

// mergeFile overlays the fields present in the file at path onto cfg.
func mergeFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return erruser.New("Could not read configuration file.", err)
	}

	var file fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return erruser.New("Invalid YAML in "+path+".", err)
		}
	default:
		if _, err := toml.Decode(string(data), &file); err != nil {
			return erruser.New("Invalid TOML in "+path+".", err)
		}
	}

	if file.Provider != nil && *file.Provider != "" {
		cfg.Provider = *file.Provider
	}
	if file.UseMock != nil {
		cfg.UseMock = *file.UseMock
	}
	if file.Endpoint != nil {
		cfg.Endpoint = *file.Endpoint
	}
	if file.Model != nil {
		cfg.Model = *file.Model
	}
	if file.Band != nil {
		cfg.Band = *file.Band
	}
	if file.PageSize != nil {
		cfg.PageSize = *file.PageSize
	}
	if file.AnchorLimit != nil {
		cfg.AnchorLimit = *file.AnchorLimit
	}
	if file.MockScore != nil {
		cfg.MockScore = *file.MockScore
	}
	if file.Timeout != nil && *file.Timeout != "" {
		d, err := parseDuration(*file.Timeout)
		if err != nil {
			return erruser.New("Configuration timeout is invalid.", err)
		}
		cfg.Timeout = d
	}
	if file.CacheEnabled != nil {
		cfg.CacheEnabled = *file.CacheEnabled
	}
	if file.CacheDir != nil {
		cfg.CacheDir = *file.CacheDir
	}
	if file.CacheTTL != nil && *file.CacheTTL != "" {
		d, err := parseDuration(*file.CacheTTL)
		if err != nil {
			return erruser.New("Configuration cache_ttl is invalid.", err)
		}
		cfg.CacheTTL = d
	}
	if file.JournalPath != nil {
		cfg.JournalPath = *file.JournalPath
	}
	return nil
}

const (
	envProvider     = "PLAINWORD_PROVIDER"
	envUseMock      = "PLAINWORD_USE_MOCK"
	envEndpoint     = "PLAINWORD_ENDPOINT"
	envModel        = "PLAINWORD_MODEL"
	envBandMin      = "PLAINWORD_BAND_MIN"
	envBandMax      = "PLAINWORD_BAND_MAX"
	envPageSize     = "PLAINWORD_PAGE_SIZE"
	envAnchorLimit  = "PLAINWORD_ANCHOR_LIMIT"
	envMockScore    = "PLAINWORD_MOCK_SCORE"
	envTimeout      = "PLAINWORD_TIMEOUT"
	envCacheEnabled = "PLAINWORD_CACHE_ENABLED"
	envCacheDir     = "PLAINWORD_CACHE_DIR"
	envCacheTTL     = "PLAINWORD_CACHE_TTL"
	envJournalPath  = "PLAINWORD_JOURNAL_PATH"
	envOpenAIKey    = "OPENAI_API_KEY"
)

func applyEnv(cfg *Config, env []string) error {
	vals := make(map[string]string)
	for _, e := range env {
		idx := strings.Index(e, "=")
		if idx <= 0 {
			continue
		}
		vals[strings.TrimSpace(e[:idx])] = strings.TrimSpace(e[idx+1:])
	}

	if v := vals[envProvider]; v != "" {
		cfg.Provider = v
	}
	if v := vals[envUseMock]; v != "" {
		b, err := parseBool(v)
		if err != nil {
			return erruser.New(envUseMock+" must be true or false.", err)
		}
		cfg.UseMock = b
	}
	if v, ok := vals[envEndpoint]; ok {
		cfg.Endpoint = v
	}
	if v, ok := vals[envModel]; ok {
		cfg.Model = v
	}
	for key, dst := range map[string]*float64{
		envBandMin:   &cfg.Band.Min,
		envBandMax:   &cfg.Band.Max,
		envMockScore: &cfg.MockScore,
	} {
		v := vals[key]
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return erruser.New(key+" must be a valid number.", err)
		}
		*dst = f
	}
	for key, dst := range map[string]*int{
		envPageSize:    &cfg.PageSize,
		envAnchorLimit: &cfg.AnchorLimit,
	} {
		v := vals[key]
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return erruser.New(key+" must be a whole number.", err)
		}
		*dst = n
	}
	if v := vals[envTimeout]; v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return erruser.New(envTimeout+" must be a valid duration.", err)
		}
		cfg.Timeout = d
	}
	if v := vals[envCacheEnabled]; v != "" {
		b, err := parseBool(v)
		if err != nil {
			return erruser.New(envCacheEnabled+" must be true or false.", err)
		}
		cfg.CacheEnabled = b
	}
	if v, ok := vals[envCacheDir]; ok {
		cfg.CacheDir = v
	}
	if v := vals[envCacheTTL]; v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return erruser.New(envCacheTTL+" must be a valid duration.", err)
		}
		cfg.CacheTTL = d
	}
	if v, ok := vals[envJournalPath]; ok {
		cfg.JournalPath = v
	}
	if v := vals[envOpenAIKey]; v != "" {
		cfg.APIKey = v
	}
	return nil
}

func applyOverrides(cfg *Config, o *Overrides) {
	if o == nil {
		return
	}
	if o.Provider != nil {
		cfg.Provider = *o.Provider
		cfg.UseMock = false
	}
	if o.UseMock != nil {
		cfg.UseMock = *o.UseMock
	}
	if o.Endpoint != nil {
		cfg.Endpoint = *o.Endpoint
	}
	if o.Model != nil {
		cfg.Model = *o.Model
	}
	if o.PageSize != nil {
		cfg.PageSize = *o.PageSize
	}
	if o.JournalPath != nil {
		cfg.JournalPath = *o.JournalPath
	}
	if o.NoCache != nil && *o.NoCache {
		cfg.CacheEnabled = false
	}
}

// parseDuration accepts a Go duration ("90s", "2m") or integer seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return time.Duration(n) * time.Second, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}
