package redis

import (
	"context"
	"testing"
	"time"

	"muhasebe-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	created := time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)
	s := &domain.Session{
		ID:           "sid-1",
		UserID:       domain.NewID(),
		Username:     "ayse",
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
		Restrictions: []string{"accounting:delete"},
		CreatedAt:    created,
	}

	require.NoError(t, store.Create(ctx, s, time.Hour))

	assert.True(t, mr.Exists("session:sid-1"))
	assert.Equal(t, time.Hour, mr.TTL("session:sid-1"))
	assert.Equal(t, s.UserID, mr.HGet("session:sid-1", "id"))
	assert.Equal(t, `["accounting:delete"]`, mr.HGet("session:sid-1", "restrictions"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s, got)
}

func TestSessionStore_GetMissing(t *testing.T) {
	_, client := newTestClient(t)
	store := NewSessionStore(client)

	got, err := store.Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_Expires(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Session{ID: "sid-2", UserID: "u1", CreatedAt: time.Now()}, time.Minute))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "sid-2")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_NilRestrictions(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Session{ID: "sid-3", UserID: "u1", Role: domain.RoleAdmin}, time.Hour))
	assert.Equal(t, "[]", mr.HGet("session:sid-3", "restrictions"))

	got, err := store.Get(ctx, "sid-3")
	require.NoError(t, err)
	assert.Empty(t, got.Restrictions)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestSessionStore_Delete(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &domain.Session{ID: "sid-4", UserID: "u1"}, time.Hour))
	require.NoError(t, store.Delete(ctx, "sid-4"))
	assert.False(t, mr.Exists("session:sid-4"))

	assert.NoError(t, store.Delete(ctx, "sid-4"), "deleting twice is fine")
}

func TestSessionStore_CorruptRestrictions(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)

	mr.HSet("session:bad", "id", "u1", "restrictions", "{not json")

	_, err := store.Get(context.Background(), "bad")
	assert.ErrorContains(t, err, "decoding session restrictions")
}
