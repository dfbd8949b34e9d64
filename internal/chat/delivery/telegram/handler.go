package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tailortalk/internal/chat"
	"tailortalk/internal/session"
	pkgLog "tailortalk/pkg/log"
	pkgResponse "tailortalk/pkg/response"
)

const (
	startMessage = "👋 Welcome to *TailorTalk*!\n\nTell me when you'd like to meet and I'll find free time in your calendar and book it.\n\n_Example: \"Do you have an hour tomorrow afternoon?\"_"
	helpMessage  = "*How to use:*\n\n• Ask for availability: `free slots next friday`\n• Pick a slot by replying with its number\n• Confirm to book\n• `/reset` starts over"
	resetMessage = "Conversation cleared. When would you like to meet?"
	errorMessage = "Something went wrong while handling your message. Please try again."
)

type handler struct {
	l   pkgLog.Logger
	uc  chat.UseCase
	bot Sender
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine; Telegram retries webhooks that answer slowly and an
// LLM plus calendar round trip can take several seconds.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	requestID := pkgLog.RequestIDFromContext(ctx)

	go func() {
		// Detach from the request context, which is cancelled after the response
		bgCtx := pkgLog.WithRequestID(context.Background(), requestID)
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, errorMessage)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *tgbotapi.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	chatID := msg.Chat.ID
	sessionID := fmt.Sprintf("telegram-%d", chatID)

	// ---- Built-in commands ----
	switch commandOf(text) {
	case "start":
		return h.bot.SendMessageWithMode(chatID, startMessage, tgbotapi.ModeMarkdown)
	case "help":
		return h.bot.SendMessageWithMode(chatID, helpMessage, tgbotapi.ModeMarkdown)
	case "reset":
		if err := h.uc.ResetSession(ctx, sessionID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			return err
		}
		return h.bot.SendMessage(chatID, resetMessage)
	}

	if err := h.bot.SendTyping(chatID); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send typing action: %v", err)
	}

	output, err := h.uc.Chat(ctx, chat.ChatInput{
		SessionID: sessionID,
		Message:   text,
		Channel:   chat.ChannelTelegram,
	})
	if err != nil {
		if errors.Is(err, chat.ErrMessageTooLong) {
			return h.bot.SendMessage(chatID, fmt.Sprintf("Please keep messages under %d characters.", chat.MaxMessageLength))
		}
		return err
	}

	// LLM replies are free-form; sent as plain text so stray markdown cannot fail the send
	return h.bot.SendMessage(chatID, output.Reply)
}

// commandOf returns "start" for "/start" and "/start@SomeBot".
func commandOf(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0][1:]
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}
