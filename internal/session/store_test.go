package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/scentquiz/internal/models"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(0)

	s := New()
	s.SetProfile(models.UserProfile{Name: "Ana"})
	id, err := st.Create(ctx, s)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	s.Start()
	s.Next()
	s.Complete([]models.Recommendation{{Product: models.Product{ID: "p1"}, MatchPercentage: 95}})
	require.NoError(t, st.Save(ctx, id, s))

	got, err := st.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Profile.Name)
	assert.Equal(t, 1, got.CurrentStep)
	require.Len(t, got.Recommendations, 1)
	assert.Equal(t, "p1", got.Recommendations[0].Product.ID)
	assert.Equal(t, 95, got.Recommendations[0].MatchPercentage)

	require.NoError(t, st.Delete(ctx, id))
	_, err = st.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UnknownID(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(0)
	id := uuid.New()

	assert.ErrorIs(t, st.Save(ctx, id, New()), ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, id), ErrNotFound)
	_, err := st.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(0)
	id, err := st.Create(ctx, New())
	require.NoError(t, err)

	got, err := st.Get(ctx, id)
	require.NoError(t, err)
	got.Next()

	again, err := st.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, again.CurrentStep)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	st := NewMemoryStore(time.Hour)
	st.now = clock.now

	idle, err := st.Create(ctx, New())
	require.NoError(t, err)
	active, err := st.Create(ctx, New())
	require.NoError(t, err)

	clock.t = clock.t.Add(50 * time.Minute)
	require.NoError(t, st.Save(ctx, active, New()))

	clock.t = clock.t.Add(20 * time.Minute)
	_, err = st.Get(ctx, idle)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Save(ctx, idle, New()), ErrNotFound)
	_, err = st.Get(ctx, active)
	assert.NoError(t, err, "saving refreshes the idle timer")

	removed, err := st.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, st.Len())
}

func TestMemoryStore_NoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Now()}
	st := NewMemoryStore(0)
	st.now = clock.now

	id, err := st.Create(ctx, New())
	require.NoError(t, err)

	clock.t = clock.t.Add(365 * 24 * time.Hour)
	_, err = st.Get(ctx, id)
	assert.NoError(t, err)
	removed, err := st.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStartCleanupRoutine(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := &fakeClock{t: time.Now()}
	st := NewMemoryStore(time.Minute)
	st.now = clock.now
	_, err := st.Create(ctx, New())
	require.NoError(t, err)

	st.mu.Lock()
	clock.t = clock.t.Add(2 * time.Minute)
	st.mu.Unlock()

	StartCleanupRoutine(ctx, st, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return st.Len() == 0 }, time.Second, 5*time.Millisecond)
}
