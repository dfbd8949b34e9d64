package agent

import (
	"context"
	"errors"

	"tailortalk/internal/session"
)

// ErrToolNotFound is reported when the model calls an unregistered tool.
var ErrToolNotFound = errors.New("tool not found")

// Tool is a function the model can call.
type Tool interface {
	Name() string
	Description() string
	// Parameters is the JSON Schema of the arguments.
	Parameters() map[string]interface{}
	// Execute runs the call. The caller's session is available through
	// StateFromContext.
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// Effect is implemented by tool results that change the conversation.
type Effect interface {
	Apply(st session.State) session.State
}

type stateKey struct{}

func WithState(ctx context.Context, st session.State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func StateFromContext(ctx context.Context) (session.State, bool) {
	st, ok := ctx.Value(stateKey{}).(session.State)
	return st, ok
}
