package llmprovider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tailortalk/config"
	"tailortalk/pkg/gemini"
)

type builder func(cfg config.ProviderConfig) (Provider, error)

var builders = map[string]builder{
	ProviderOpenAI: func(cfg config.ProviderConfig) (Provider, error) {
		return NewOpenAIAdapter(ProviderOpenAI, cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	},
	ProviderDeepSeek: func(cfg config.ProviderConfig) (Provider, error) {
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultDeepSeekBaseURL
		}
		return NewOpenAIAdapter(ProviderDeepSeek, cfg.APIKey, baseURL, cfg.Model), nil
	},
	ProviderGemini: func(cfg config.ProviderConfig) (Provider, error) {
		client, err := gemini.New(gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model, APIURL: cfg.BaseURL})
		if err != nil {
			return nil, err
		}
		return NewGeminiProvider(client), nil
	},
}

// InitializeProviders builds the enabled providers in priority order, each
// wrapped with its configured timeout. A provider that cannot be built is
// skipped; only when none can be built is an error returned.
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, error) {
	if cfg == nil {
		return nil, errors.New("llmprovider: nil config")
	}

	enabled := make([]config.ProviderConfig, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	sort.SliceStable(enabled, func(i, j int) bool { return enabled[i].Priority < enabled[j].Priority })

	var (
		providers []Provider
		errs      []error
	)
	for _, pc := range enabled {
		p, err := buildProvider(pc)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s (priority %d): %w", pc.Name, pc.Priority, err))
			continue
		}
		providers = append(providers, p)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("llmprovider: no provider initialized: %w", errors.Join(errs...))
	}
	return providers, nil
}

func buildProvider(cfg config.ProviderConfig) (Provider, error) {
	switch {
	case cfg.APIKey == "":
		return nil, errors.New("api key is required")
	case cfg.Model == "":
		return nil, errors.New("model is required")
	}

	build, ok := builders[strings.ToLower(cfg.Name)]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}

	timeout, err := parseTimeout(cfg.Timeout)
	if err != nil {
		return nil, err
	}

	p, err := build(cfg)
	if err != nil {
		return nil, err
	}
	return WithTimeout(p, timeout), nil
}

// parseTimeout accepts "" (no per-call deadline) or a Go duration like "20s".
func parseTimeout(raw string) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	return d, nil
}
