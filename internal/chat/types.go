package chat

import (
	"tailortalk/internal/session"
	"tailortalk/pkg/slotfinder"
)

const MaxMessageLength = 2000

// Channels a message can arrive on.
const (
	ChannelHTTP     = "http"
	ChannelTelegram = "telegram"
)

// ChatInput is one user message. An empty SessionID starts a new session;
// a non-empty Timezone switches the session to it.
type ChatInput struct {
	SessionID string
	Message   string
	Timezone  string
	Channel   string
}

type ChatOutput struct {
	SessionID      string
	Reply          string
	Step           session.Step
	Timezone       string
	AvailableSlots []slotfinder.Slot
	History        []session.Turn
}

type StatsOutput struct {
	ActiveSessions int
}
