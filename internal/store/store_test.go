package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/waffle-cheatsheet/internal/overlay"
)

// runContract exercises the behaviour every Store must share.
func runContract(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	_, err := st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s := &overlay.Session{
		ID:        "abc123",
		Layout:    "A B C D E\n",
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, st.Save(ctx, s))

	// Mutating the caller's copy must not leak into the store.
	s.Visible = true
	got, err := st.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, got.Visible)
	assert.Equal(t, "A B C D E\n", got.Layout)

	require.NoError(t, st.Save(ctx, s))
	got, err = st.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, got.Visible)
	assert.True(t, s.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, st.Delete(ctx, "abc123"))
	_, err = st.Get(ctx, "abc123")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, st.Delete(ctx, "abc123"))
}

func TestMemoryStore_Contract(t *testing.T) {
	runContract(t, NewMemoryStore(0))
}

func TestMemoryStore_TTL(t *testing.T) {
	st := NewMemoryStore(time.Hour).(*memory)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, &overlay.Session{ID: "s", UpdatedAt: now.Add(-30 * time.Minute)}))
	_, err := st.Get(ctx, "s")
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = st.Get(ctx, "s")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newMiniredis(t)
	st := NewRedisFromClient(client)
	require.NoError(t, st.Ping(context.Background()))
	runContract(t, st)
	assert.NoError(t, st.Close())
}

func TestRedisStore_TTLAndPrefix(t *testing.T) {
	mr, client := newMiniredis(t)
	st := NewRedisFromClient(client, WithTTL(time.Minute), WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, &overlay.Session{ID: "s1"}))
	assert.True(t, mr.Exists("test:s1"))
	assert.Equal(t, time.Minute, mr.TTL("test:s1"))

	mr.FastForward(2 * time.Minute)
	_, err := st.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}
