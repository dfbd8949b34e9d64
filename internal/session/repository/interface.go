package repository

import (
	"context"

	"tailortalk/internal/session"
)

// Repository stores conversation state keyed by session id.
// Get returns session.ErrSessionNotFound for unknown or expired ids.
type Repository interface {
	Get(ctx context.Context, sessionID string) (session.State, error)
	Save(ctx context.Context, state session.State) error
	Delete(ctx context.Context, sessionID string) error
	Count(ctx context.Context) (int, error)
}
