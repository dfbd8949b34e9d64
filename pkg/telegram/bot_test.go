package telegram_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tailortalk/pkg/telegram"
)

func TestBot(t *testing.T) {
	var lastParseMode string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		_ = r.ParseForm()

		if !strings.HasPrefix(path, "/bottest-token/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		switch {
		case strings.HasSuffix(path, "/setWebhook"):
			switch r.FormValue("url") {
			case "https://example.com/cause_error":
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "error_code": 400, "description": "invalid url"}`))
			case "https://example.com/cause_500":
				w.WriteHeader(http.StatusInternalServerError)
			default:
				w.Write([]byte(`{"ok": true, "result": true, "description": "webhook set"}`))
			}

		case strings.HasSuffix(path, "/sendMessage"):
			lastParseMode = r.FormValue("parse_mode")
			switch r.FormValue("text") {
			case "cause_error":
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "error_code": 400, "description": "invalid text"}`))
			case "cause_500":
				w.WriteHeader(http.StatusInternalServerError)
			default:
				w.Write([]byte(`{"ok": true, "result": {"message_id": 1, "date": 0, "chat": {"id": 12345, "type": "private"}}}`))
			}

		case strings.HasSuffix(path, "/sendChatAction"):
			if r.FormValue("action") != "typing" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "bad action"}`))
				return
			}
			w.Write([]byte(`{"ok": true, "result": true}`))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)

	t.Run("SetWebhook Success", func(t *testing.T) {
		if err := bot.SetWebhook("https://example.com/webhook"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("SetWebhook API Failed", func(t *testing.T) {
		err := bot.SetWebhook("https://example.com/cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid url") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SetWebhook HTTP Failed", func(t *testing.T) {
		if err := bot.SetWebhook("https://example.com/cause_500"); err == nil {
			t.Fatalf("expected http decoding error")
		}
	})

	t.Run("SendMessage Success", func(t *testing.T) {
		if err := bot.SendMessage(12345, "Hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastParseMode != "" {
			t.Errorf("expected no parse mode, got %q", lastParseMode)
		}
	})

	t.Run("SendMessageWithMode Success", func(t *testing.T) {
		if err := bot.SendMessageWithMode(12345, "*Hello*", "Markdown"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastParseMode != "Markdown" {
			t.Errorf("expected Markdown, got %q", lastParseMode)
		}
	})

	t.Run("SendMessage API Failed", func(t *testing.T) {
		err := bot.SendMessage(12345, "cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid text") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SendMessage HTTP Failed", func(t *testing.T) {
		if err := bot.SendMessage(12345, "cause_500"); err == nil {
			t.Fatalf("expected http decoding error")
		}
	})

	t.Run("SendTyping", func(t *testing.T) {
		if err := bot.SendTyping(12345); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Invalid API URL logic", func(t *testing.T) {
		badBot := telegram.NewBot("test")
		badBot.SetAPIURL("http://invalid-url.local:1234")
		if err := badBot.SendMessage(12345, "fail"); err == nil {
			t.Errorf("expected network failure on invalid domain")
		}
	})
}
