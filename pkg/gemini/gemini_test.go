package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tailortalk/pkg/gemini"
)

func TestNew_Validate(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); err == nil {
		t.Fatal("expected error without api key")
	}

	client, err := gemini.New(gemini.Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != gemini.DefaultModel {
		t.Errorf("expected default model, got %s", client.Model())
	}
}

func TestGenerateContent(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/models/test-model:generateContent" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		contents := captured["contents"].([]interface{})
		first := contents[0].(map[string]interface{})["parts"].([]interface{})[0].(map[string]interface{})
		switch first["text"] {
		case "cause_500":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "boom"}`))
			return
		case "blocked":
			w.Write([]byte(`{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`))
			return
		}

		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [
				{"functionCall": {"name": "search_available_slots", "args": {"date_preference": "tomorrow"}}}
			]}}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 3, "totalTokenCount": 15}
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", Model: "test-model", APIURL: ts.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("function call", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &gemini.Request{
			SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: "be brief"}}},
			Messages: []gemini.Content{
				{Role: "user", Parts: []gemini.Part{{Text: "book me tomorrow"}}},
				{Role: "assistant", Parts: []gemini.Part{{Text: "sure"}}},
			},
			Tools:       []gemini.Tool{{Name: "search_available_slots", Description: "d"}},
			Temperature: 0.3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		call := resp.Content.Parts[0].FunctionCall
		if call == nil || call.Name != "search_available_slots" || call.Args["date_preference"] != "tomorrow" {
			t.Fatalf("unexpected function call: %+v", call)
		}
		if resp.Usage.TotalTokens != 15 {
			t.Errorf("expected usage to be mapped, got %+v", resp.Usage)
		}

		contents := captured["contents"].([]interface{})
		if role := contents[1].(map[string]interface{})["role"]; role != "model" {
			t.Errorf("expected assistant role mapped to model, got %v", role)
		}
		if _, ok := captured["tools"]; !ok {
			t.Errorf("expected tools in request")
		}
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "cause_500"}}}},
		})
		var apiErr *gemini.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *gemini.APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusInternalServerError || !strings.Contains(apiErr.Body, "boom") {
			t.Errorf("unexpected api error: %+v", apiErr)
		}
	})

	t.Run("blocked prompt", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "blocked"}}}},
		})
		if !errors.Is(err, gemini.ErrBlocked) {
			t.Fatalf("expected ErrBlocked, got %v", err)
		}
	})
}
