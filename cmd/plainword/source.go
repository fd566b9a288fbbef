package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/csheth/plainword/internal/config"
	"github.com/csheth/plainword/internal/erruser"
	"github.com/csheth/plainword/internal/llm"
	"github.com/csheth/plainword/internal/review"
	"github.com/csheth/plainword/internal/suggest"
)

// buildSource turns the configured provider into a suggestion source. The
// mock is never cached; everything else is when the cache is enabled.
func buildSource(cfg *config.Config) (suggest.Source, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	var src suggest.Source
	switch provider := cfg.EffectiveProvider(); provider {
	case config.ProviderMock:
		return suggest.NewMock(cfg.MockScore), nil
	case config.ProviderRemote:
		src = suggest.NewRemote(cfg.Endpoint, httpClient)
	case config.ProviderOllama, config.ProviderOpenAI:
		client, err := llm.NewFromEnv(llm.Config{
			Provider:   provider,
			Model:      cfg.Model,
			Endpoint:   cfg.Endpoint,
			APIKey:     cfg.APIKey,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, erruser.New("Could not set up the language model.", err)
		}
		src = suggest.NewLLM(client)
	default:
		return nil, erruser.New("Unknown suggestion provider.", fmt.Errorf("provider %q", provider))
	}

	if !cfg.CacheEnabled {
		return src, nil
	}
	cached, err := suggest.NewCached(src, cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		log.Printf("[cache] disabled: %v", err)
		return src, nil
	}
	return cached, nil
}

func reviewOptions(cfg *config.Config) review.Options {
	return review.Options{
		Band:     review.Band{Min: cfg.Band.Min, Max: cfg.Band.Max},
		PageSize: cfg.PageSize,
	}
}
