package drafts

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T, ttl time.Duration) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewStorage(client, ttl), server
}

func TestStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage(t, time.Hour)

	_, found, err := storage.Get(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.False(t, found)

	form := dto.RegistrationForm{FirstName: "Ada", DietaryRestrictionIDs: []string{"vegan"}}
	require.NoError(t, storage.Set(ctx, "u1", "e1", form))

	got, found, err := storage.Get(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, form, got)

	_, found, err = storage.Get(ctx, "u1", "e2")
	require.NoError(t, err)
	assert.False(t, found, "drafts are per event")
}

func TestStorage_Expires(t *testing.T) {
	ctx := context.Background()
	storage, server := newStorage(t, time.Hour)

	require.NoError(t, storage.Set(ctx, "u1", "e1", dto.RegistrationForm{FirstName: "Ada"}))
	server.FastForward(2 * time.Hour)

	_, found, err := storage.Get(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStorage_Clear(t *testing.T) {
	ctx := context.Background()
	storage, _ := newStorage(t, 0)

	require.NoError(t, storage.Set(ctx, "u1", "e1", dto.RegistrationForm{FirstName: "Ada"}))
	require.NoError(t, storage.Clear(ctx, "u1", "e1"))

	_, found, err := storage.Get(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.False(t, found)
}
