package storage

import (
	"context"
	"time"
)

// Store is the key-lookup contract the authentication and registration
// services depend on. Uniqueness of client_id, username and email is
// enforced atomically inside every backend; callers must never pre-check
// existence and then insert, which would race under concurrent
// registration.
type Store interface {
	// GetClient returns the client record, active or not; the caller
	// decides visibility. A miss returns errorx.ErrClientNotFound.
	GetClient(ctx context.Context, clientID string) (*Client, error)

	// CreateClient inserts a new client; a client_id collision returns
	// errorx.ErrClientAlreadyExists.
	CreateClient(ctx context.Context, client *Client) error

	// UpdateClient replaces the stored record for client.ClientID.
	UpdateClient(ctx context.Context, client *Client) error

	// GetUserByUsername returns the user record, active or not. A miss
	// returns errorx.ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// CreateUser inserts a new user and assigns user.ID; a username or
	// email collision returns errorx.ErrDuplicateUser.
	CreateUser(ctx context.Context, user *User) error
}

// Client is a registered OAuth participant as the core operates on it:
// list-valued metadata stays a slice; serialization is a backend concern.
type Client struct {
	ClientID        string    `json:"client_id"`
	SecretHash      string    `json:"client_secret_hash,omitempty"` // empty for public clients
	Name            string    `json:"client_name"`
	Type            string    `json:"client_type"` // confidential or public
	RedirectURIs    []string  `json:"redirect_uris"`
	GrantTypes      []string  `json:"grant_types"`
	Scopes          []string  `json:"scopes"`
	TokenAuthMethod string    `json:"token_endpoint_auth_method"`
	RequirePKCE     bool      `json:"require_pkce"`
	AccessTokenTTL  int       `json:"access_token_ttl_seconds"`
	RefreshTokenTTL int       `json:"refresh_token_ttl_seconds"`
	Active          bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// User is an end user of the authorization server.
type User struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	Active        bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
