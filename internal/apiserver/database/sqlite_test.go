package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rackleet/authserver/internal/common/config"
	"github.com/rackleet/authserver/internal/common/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) Database {
	t.Helper()
	cfg := &config.DatabaseConfig{Type: "sqlite", DBName: filepath.Join(t.TempDir(), "auth.db")}
	db, err := NewSQLite(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_ClientRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	client := &OAuthClient{
		ClientID:                "client-1",
		ClientSecretHash:        "$2a$12$fakefakefakefakefakefake",
		ClientName:              "demo",
		ClientType:              "confidential",
		RedirectURIs:            []string{"https://example.com/cb", "https://example.com/cb2"},
		AllowedGrantTypes:       []string{"client_credentials"},
		AllowedScopes:           []string{"read", "write"},
		TokenEndpointAuthMethod: "client_secret_basic",
		AccessTokenTTLSeconds:   3600,
		RefreshTokenTTLSeconds:  2592000,
		IsActive:                true,
	}
	require.NoError(t, db.CreateClient(ctx, client))

	got, err := db.GetClientByClientID(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "demo", got.ClientName)
	assert.Equal(t, []string{"https://example.com/cb", "https://example.com/cb2"}, got.RedirectURIs)
	assert.Equal(t, []string{"read", "write"}, got.AllowedScopes)
	assert.True(t, got.IsActive)

	got.ClientName = "renamed"
	got.IsActive = false
	require.NoError(t, db.UpdateClient(ctx, got))

	got, err = db.GetClientByClientID(ctx, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.ClientName)
	assert.False(t, got.IsActive)
}

func TestSQLite_ClientDuplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := &OAuthClient{ClientID: "dup", ClientName: "a", ClientType: "public", TokenEndpointAuthMethod: "none", IsActive: true}
	b := &OAuthClient{ClientID: "dup", ClientName: "b", ClientType: "public", TokenEndpointAuthMethod: "none", IsActive: true}

	require.NoError(t, db.CreateClient(ctx, a))
	assert.ErrorIs(t, db.CreateClient(ctx, b), errorx.ErrClientAlreadyExists)
}

func TestSQLite_ClientNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetClientByClientID(context.Background(), "nope")
	assert.ErrorIs(t, err, errorx.ErrClientNotFound)
}

func TestSQLite_UserUniqueness(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := &User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, db.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	sameName := &User{Username: "alice", Email: "other@example.com", PasswordHash: "hash", IsActive: true}
	assert.ErrorIs(t, db.CreateUser(ctx, sameName), errorx.ErrDuplicateUser)

	sameEmail := &User{Username: "bob", Email: "alice@example.com", PasswordHash: "hash", IsActive: true}
	assert.ErrorIs(t, db.CreateUser(ctx, sameEmail), errorx.ErrDuplicateUser)

	got, err := db.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	_, err = db.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, errorx.ErrUserNotFound)
}

func TestNewDatabase_UnsupportedType(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Type: "oracle"})
	assert.Error(t, err)
}
