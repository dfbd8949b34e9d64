package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"tailortalk/internal/session"
	"tailortalk/internal/session/repository"
)

const (
	DefaultMaxEntries = 10000
	DefaultTTL        = 30 * time.Minute
)

type implRepository struct {
	cache *expirable.LRU[string, session.State]
	now   func() time.Time
}

// New creates an in-process session store. Entries expire ttl after their
// last save and the least recently used ones are evicted past maxEntries.
func New(maxEntries int, ttl time.Duration) repository.Repository {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &implRepository{
		cache: expirable.NewLRU[string, session.State](maxEntries, nil, ttl),
		now:   time.Now,
	}
}

func (r *implRepository) Get(ctx context.Context, sessionID string) (session.State, error) {
	state, ok := r.cache.Get(sessionID)
	if !ok {
		return session.State{}, session.ErrSessionNotFound
	}
	return state, nil
}

func (r *implRepository) Save(ctx context.Context, state session.State) error {
	r.cache.Add(state.SessionID, state.Touch(r.now()))
	return nil
}

func (r *implRepository) Delete(ctx context.Context, sessionID string) error {
	if !r.cache.Remove(sessionID) {
		return session.ErrSessionNotFound
	}
	return nil
}

func (r *implRepository) Count(ctx context.Context) (int, error) {
	return r.cache.Len(), nil
}
