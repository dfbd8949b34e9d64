package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tailortalk/internal/session"
	"tailortalk/internal/session/repository"
	pkgLog "tailortalk/pkg/log"
)

const (
	DefaultKeyPrefix = "tailortalk:session:"
	DefaultTTL       = 30 * time.Minute
)

// Options configures the Redis session store.
type Options struct {
	KeyPrefix string
	TTL       time.Duration
}

type implRepository struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	l      pkgLog.Logger
	now    func() time.Time
}

// New creates a Redis-backed session store. Each session is one JSON string
// key whose TTL is refreshed on every save.
func New(client *goredis.Client, opts Options, l pkgLog.Logger) repository.Repository {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &implRepository{
		client: client,
		prefix: opts.KeyPrefix,
		ttl:    opts.TTL,
		l:      l,
		now:    time.Now,
	}
}

func (r *implRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *implRepository) Get(ctx context.Context, sessionID string) (session.State, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return session.State{}, session.ErrSessionNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "session.redis.Get: %v", err)
		return session.State{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	var state session.State
	if err := json.Unmarshal(data, &state); err != nil {
		r.l.Warnf(ctx, "session.redis.Get: dropping corrupt session %s: %v", sessionID, err)
		_ = r.client.Del(ctx, r.key(sessionID)).Err()
		return session.State{}, session.ErrSessionNotFound
	}
	return state, nil
}

func (r *implRepository) Save(ctx context.Context, state session.State) error {
	data, err := json.Marshal(state.Touch(r.now()))
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.SessionID, err)
	}
	if err := r.client.Set(ctx, r.key(state.SessionID), data, r.ttl).Err(); err != nil {
		r.l.Errorf(ctx, "session.redis.Save: %v", err)
		return fmt.Errorf("save session %s: %w", state.SessionID, err)
	}
	return nil
}

func (r *implRepository) Delete(ctx context.Context, sessionID string) error {
	n, err := r.client.Del(ctx, r.key(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	if n == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// Count scans the key prefix. It is O(keys) and meant for health output.
func (r *implRepository) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 500).Result()
		if err != nil {
			return 0, fmt.Errorf("count sessions: %w", err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}
