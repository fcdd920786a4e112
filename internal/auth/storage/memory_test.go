package storage

import (
	"context"
	"testing"
	"time"

	"github.com/rackleet/authserver/internal/common/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClient(id string) *Client {
	now := time.Now().UTC()
	return &Client{
		ClientID:        id,
		SecretHash:      "$2a$12$abcdefghijklmnopqrstuv",
		Name:            "Test App",
		Type:            "confidential",
		RedirectURIs:    []string{"https://app.example.com/callback"},
		GrantTypes:      []string{"authorization_code", "refresh_token"},
		Scopes:          []string{"openid", "profile"},
		TokenAuthMethod: "client_secret_basic",
		AccessTokenTTL:  3600,
		RefreshTokenTTL: 2592000,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func sampleUser(username, email string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMemoryStore_ClientLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.GetClient(ctx, "missing")
	assert.ErrorIs(t, err, errorx.ErrClientNotFound)

	client := sampleClient("client-1")
	require.NoError(t, store.CreateClient(ctx, client))

	got, err := store.GetClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, client.Name, got.Name)
	assert.Equal(t, client.GrantTypes, got.GrantTypes)

	// Mutating the returned copy must not affect the stored record.
	got.Name = "changed"
	again, err := store.GetClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "Test App", again.Name)

	got.Name = "Renamed App"
	require.NoError(t, store.UpdateClient(ctx, got))
	updated, err := store.GetClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed App", updated.Name)

	err = store.UpdateClient(ctx, sampleClient("missing"))
	assert.ErrorIs(t, err, errorx.ErrClientNotFound)
}

func TestMemoryStore_DuplicateClient(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.CreateClient(ctx, sampleClient("client-1")))
	err := store.CreateClient(ctx, sampleClient("client-1"))
	assert.ErrorIs(t, err, errorx.ErrClientAlreadyExists)
}

func TestMemoryStore_UserUniqueness(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := sampleUser("alice", "alice@example.com")
	require.NoError(t, store.CreateUser(ctx, first))
	assert.NotZero(t, first.ID)

	err := store.CreateUser(ctx, sampleUser("alice", "other@example.com"))
	assert.ErrorIs(t, err, errorx.ErrDuplicateUser)

	err = store.CreateUser(ctx, sampleUser("bob", "alice@example.com"))
	assert.ErrorIs(t, err, errorx.ErrDuplicateUser)

	second := sampleUser("bob", "bob@example.com")
	require.NoError(t, store.CreateUser(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	got, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = store.GetUserByUsername(ctx, "carol")
	assert.ErrorIs(t, err, errorx.ErrUserNotFound)
}
