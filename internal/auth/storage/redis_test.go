package storage

import (
	"context"
	"testing"

	"github.com/rackleet/authserver/internal/common/errorx"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr(), "", 0)
	require.NoError(t, err)
	return store
}

func TestRedisStore_ClientLifecycle(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.GetClient(ctx, "missing")
	assert.ErrorIs(t, err, errorx.ErrClientNotFound)

	client := sampleClient("client-1")
	require.NoError(t, store.CreateClient(ctx, client))

	got, err := store.GetClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, client.Name, got.Name)
	assert.Equal(t, client.RedirectURIs, got.RedirectURIs)
	assert.Equal(t, client.Scopes, got.Scopes)

	got.Active = false
	require.NoError(t, store.UpdateClient(ctx, got))
	updated, err := store.GetClient(ctx, "client-1")
	require.NoError(t, err)
	assert.False(t, updated.Active)

	err = store.UpdateClient(ctx, sampleClient("missing"))
	assert.ErrorIs(t, err, errorx.ErrClientNotFound)

	err = store.CreateClient(ctx, sampleClient("client-1"))
	assert.ErrorIs(t, err, errorx.ErrClientAlreadyExists)
}

func TestRedisStore_UserUniqueness(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	first := sampleUser("alice", "alice@example.com")
	require.NoError(t, store.CreateUser(ctx, first))
	assert.NotZero(t, first.ID)

	err := store.CreateUser(ctx, sampleUser("alice", "other@example.com"))
	assert.ErrorIs(t, err, errorx.ErrDuplicateUser)

	// An email conflict rolls back the username record, so the name
	// stays available for a later registration.
	err = store.CreateUser(ctx, sampleUser("bob", "alice@example.com"))
	assert.ErrorIs(t, err, errorx.ErrDuplicateUser)
	_, err = store.GetUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, errorx.ErrUserNotFound)

	second := sampleUser("bob", "bob@example.com")
	require.NoError(t, store.CreateUser(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRedisStore_ConnectError(t *testing.T) {
	_, err := NewRedisStore("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
