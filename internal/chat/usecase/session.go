package usecase

import (
	"context"

	"tailortalk/internal/chat"
	"tailortalk/internal/session"
)

func (uc *implUseCase) GetSession(ctx context.Context, sessionID string) (session.State, error) {
	st, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return session.State{}, err
	}
	return st, nil
}

// ResetSession deletes the session; session.ErrSessionNotFound when absent.
func (uc *implUseCase) ResetSession(ctx context.Context, sessionID string) error {
	if err := uc.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	uc.l.Infof(ctx, "chat.usecase.ResetSession: %s", sessionID)
	return nil
}

func (uc *implUseCase) Stats(ctx context.Context) (chat.StatsOutput, error) {
	n, err := uc.repo.Count(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "chat.usecase.Stats: %v", err)
		return chat.StatsOutput{}, err
	}
	return chat.StatsOutput{ActiveSessions: n}, nil
}
