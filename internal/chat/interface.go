package chat

import (
	"context"

	"tailortalk/internal/session"
)

// UseCase defines the business logic interface for conversations.
type UseCase interface {
	// Chat handles one user message and returns the assistant reply.
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)

	// GetSession returns the stored conversation.
	GetSession(ctx context.Context, sessionID string) (session.State, error)

	// ResetSession forgets a conversation.
	ResetSession(ctx context.Context, sessionID string) error

	// Stats reports store-wide counters.
	Stats(ctx context.Context) (StatsOutput, error)

	// AgentReady reports whether replies come from the LLM agent.
	AgentReady() bool
}

// Agent turns a message into a reply, possibly changing the session.
type Agent interface {
	Ready() bool
	ProcessQuery(ctx context.Context, st session.State, message string) (string, session.State, error)
}
