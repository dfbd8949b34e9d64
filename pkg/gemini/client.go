package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client calls the generateContent endpoint. Safe for concurrent use.
type Client interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

type client struct {
	cfg Config
}

// New validates cfg and returns a Client.
func New(cfg Config) (Client, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &client{cfg: cfg}, nil
}

func (c *client) Model() string { return c.cfg.Model }

// GenerateContent sends req and returns the first candidate. A prompt or
// answer withheld by safety filters is ErrBlocked.
func (c *client) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("gemini: nil request")
	}

	var out geminiResponse
	if err := c.post(ctx, encodeRequest(req), &out); err != nil {
		return nil, err
	}
	if reason := blockReason(&out); reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, reason)
	}
	return decodeResponse(&out), nil
}

func (c *client) post(ctx context.Context, in geminiRequest, out *geminiResponse) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("gemini: encode request: %w", err)
	}

	endpoint := c.cfg.APIURL + "/models/" + c.cfg.Model + ":generateContent"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gemini: call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gemini: decode response: %w", err)
	}
	return nil
}
