package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailortalk/internal/session"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := New(10, time.Minute)

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	state := session.New("s1", "UTC").WithUserMessage("hi")
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.LastUserMessage())
	assert.False(t, got.UpdatedAt.IsZero())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, repo.Delete(ctx, "s1"))
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), session.ErrSessionNotFound)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryRepository_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	repo := New(2, time.Minute)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, session.New(id, "UTC")))
	}

	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = repo.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryRepository_Expires(t *testing.T) {
	ctx := context.Background()
	repo := New(10, 20*time.Millisecond)

	require.NoError(t, repo.Save(ctx, session.New("a", "UTC")))
	time.Sleep(80 * time.Millisecond)

	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
