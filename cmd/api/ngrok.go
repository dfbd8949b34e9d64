package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	ngrokAttempts = 10
	ngrokInterval = 3 * time.Second
)

var errNoTunnels = errors.New("ngrok has no active tunnels")

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// ngrokDetector polls the local ngrok API until a tunnel shows up, since
// ngrok usually starts after the bot.
type ngrokDetector struct {
	client   *http.Client
	attempts int
	interval time.Duration
}

// detectNgrokURL returns the public URL of the first HTTPS tunnel, or of any
// tunnel when none is HTTPS.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string) (string, error) {
	d := ngrokDetector{
		client:   &http.Client{Timeout: 5 * time.Second},
		attempts: ngrokAttempts,
		interval: ngrokInterval,
	}
	return d.detect(ctx, ngrokAPIBase+"/api/tunnels")
}

func (d ngrokDetector) detect(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(d.interval):
			}
		}

		tunnels, err := d.fetch(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if publicURL, ok := pickTunnel(tunnels); ok {
			return publicURL, nil
		}
		lastErr = errNoTunnels
	}
	return "", fmt.Errorf("ngrok: no tunnel after %d attempts: %w", d.attempts, lastErr)
}

func (d ngrokDetector) fetch(ctx context.Context, url string) ([]ngrokTunnel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create ngrok API request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ngrok API not reachable: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Tunnels []ngrokTunnel `json:"tunnels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode ngrok API response: %w", err)
	}
	return body.Tunnels, nil
}

func pickTunnel(tunnels []ngrokTunnel) (string, bool) {
	for _, t := range tunnels {
		if t.Proto == "https" {
			return t.PublicURL, true
		}
	}
	if len(tunnels) > 0 {
		return tunnels[0].PublicURL, true
	}
	return "", false
}
