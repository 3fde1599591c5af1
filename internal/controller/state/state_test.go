package state

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *model.Session {
	s := model.NewSession(42)
	s.Date = "2024-05-01"
	s.Slots = []model.TimeSlot{{TimeSlot: "09:00-10:00", Selectable: true}}
	s.Selection = []string{"09:00-10:00"}
	s.Form = model.ContactForm{Nombre: "Ana"}
	s.Step = model.StepEmail
	s.Generation = 3
	return s
}

func TestManager_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewManager()

	got, err := m.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	original := sampleSession()
	require.NoError(t, m.Save(ctx, original))

	// изменения после Save не должны протекать в хранилище
	original.Selection = append(original.Selection, "10:00-11:00")

	got, err = m.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"09:00-10:00"}, got.Selection)
	assert.Equal(t, model.StepEmail, got.Step)
	assert.False(t, got.UpdatedAt.IsZero())

	got.Selection[0] = "mutated"
	again, _ := m.Get(ctx, 42)
	assert.Equal(t, "09:00-10:00", again.Selection[0])

	require.NoError(t, m.Delete(ctx, 42))
	got, _ = m.Get(ctx, 42)
	assert.Nil(t, got)
}

func TestManager_PurgeIdle(t *testing.T) {
	ctx := context.Background()
	m := NewManager()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now.Add(-2 * time.Hour) }
	require.NoError(t, m.Save(ctx, model.NewSession(1)))

	m.now = func() time.Time { return now }
	require.NoError(t, m.Save(ctx, model.NewSession(2)))

	purged, err := m.PurgeIdle(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, m.Len())

	s, _ := m.Get(ctx, 2)
	assert.NotNil(t, s)
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Hour)

	require.NoError(t, store.Ping(ctx))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save(ctx, sampleSession()))
	assert.True(t, mr.Exists("session:42"))
	assert.Equal(t, time.Hour, mr.TTL("session:42"))

	got, err = store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-05-01", got.Date)
	assert.Equal(t, uint64(3), got.Generation)
	assert.Equal(t, []string{"09:00-10:00"}, got.Selection)
	assert.True(t, got.SlotsVisible)

	require.NoError(t, store.Delete(ctx, 42))
	assert.False(t, mr.Exists("session:42"))
}

func TestRedisStore_Expires(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Minute)

	require.NoError(t, store.Save(ctx, sampleSession()))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, 0)

	require.NoError(t, mr.Set("session:42", "{broken"))
	_, err := store.Get(ctx, 42)
	assert.ErrorContains(t, err, "decode session")
}
