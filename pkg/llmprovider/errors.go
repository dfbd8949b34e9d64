package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"tailortalk/pkg/gemini"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest indicates the request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderTimeout indicates a provider request timed out
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderRateLimited indicates rate limit exceeded
	ErrProviderRateLimited = errors.New("provider rate limited")
)

// ProviderError wraps provider-specific errors. StatusCode is the HTTP status
// the provider answered with, zero for transport failures.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func newProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCodeOf(err), Err: err}
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %s (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is maps the status class onto the package sentinels.
func (e *ProviderError) Is(target error) bool {
	switch target {
	case ErrProviderRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrProviderTimeout:
		return e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusGatewayTimeout ||
			errors.Is(e.Err, context.DeadlineExceeded)
	case ErrInvalidRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// retryable reports whether another attempt on the same provider can help.
// Client errors other than 408 and 429 are permanent.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrInvalidRequest) {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) && pe.StatusCode >= 400 && pe.StatusCode < 500 {
		return pe.StatusCode == http.StatusRequestTimeout || pe.StatusCode == http.StatusTooManyRequests
	}
	return true
}

func statusCodeOf(err error) int {
	var gemErr *gemini.APIError
	if errors.As(err, &gemErr) {
		return gemErr.StatusCode
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
