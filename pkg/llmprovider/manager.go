package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tailortalk/pkg/log"
	"tailortalk/pkg/metrics"
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
	metrics   *metrics.Metrics
	sleep     func(ctx context.Context, d time.Duration) error
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // Global timeout for entire fallback chain
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithMetrics records every provider attempt.
func WithMetrics(m *metrics.Metrics) ManagerOption {
	return func(mgr *Manager) { mgr.metrics = m }
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger, opts ...ManagerOption) *Manager {
	if config == nil {
		config = &Config{FallbackEnabled: true, RetryAttempts: 1}
	}
	m := &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
		sleep:     sleepCtx,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ready reports whether at least one provider is configured.
func (m *Manager) Ready() bool {
	return m != nil && len(m.providers) > 0
}

// ProviderNames lists the configured providers in priority order.
func (m *Manager) ProviderNames() []string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return names
}

// GenerateContent tries providers in priority order. Each provider gets up
// to RetryAttempts tries with linear backoff; permanent errors skip straight
// to the next provider.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	if m.config.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var errs []error
	for i, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("llmprovider: gave up after %d provider(s): %w", i, errors.Join(append(errs, err)...))
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logger.Warnf(ctx, "llmprovider.Manager: %s/%s failed: %v", provider.Name(), provider.Model(), err)
		errs = append(errs, err)

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	attempts := m.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := m.sleep(ctx, time.Duration(attempt)*m.config.RetryDelay); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		resp, err := provider.GenerateContent(ctx, req)
		m.metrics.ObserveLLMCall(provider.Name(), err, time.Since(start))
		if err == nil {
			if resp == nil {
				resp = &Response{}
			}
			resp.ProviderName = provider.Name()
			if resp.ModelName == "" {
				resp.ModelName = provider.Model()
			}
			return resp, nil
		}

		lastErr = err
		if !retryable(err) {
			break
		}
	}

	return nil, lastErr
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	if resp.Usage == nil {
		resp.Usage = &Usage{}
	}
	m.logger.Infof(ctx, "llmprovider.Manager: %s/%s answered (input_tokens=%d output_tokens=%d)",
		provider.Name(), provider.Model(), resp.Usage.InputTokens, resp.Usage.OutputTokens)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
