package storage

import (
	"context"

	"github.com/rackleet/authserver/internal/apiserver/database"
)

// DatabaseStore implements the Store interface on top of the relational
// database layer. Uniqueness comes from the unique indexes on client_id,
// username and email; duplicate-key violations are already translated to
// the conflict errors of the Store contract by the database package.
type DatabaseStore struct {
	db database.Database
}

// NewDatabaseStore creates a store backed by the given database
func NewDatabaseStore(db database.Database) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (s *DatabaseStore) GetClient(ctx context.Context, clientID string) (*Client, error) {
	row, err := s.db.GetClientByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return clientFromModel(row), nil
}

func (s *DatabaseStore) CreateClient(ctx context.Context, client *Client) error {
	return s.db.CreateClient(ctx, clientToModel(client, 0))
}

func (s *DatabaseStore) UpdateClient(ctx context.Context, client *Client) error {
	row, err := s.db.GetClientByClientID(ctx, client.ClientID)
	if err != nil {
		return err
	}
	return s.db.UpdateClient(ctx, clientToModel(client, row.ID))
}

func (s *DatabaseStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row, err := s.db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:            row.ID,
		Username:      row.Username,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		EmailVerified: row.EmailVerified,
		Active:        row.IsActive,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func (s *DatabaseStore) CreateUser(ctx context.Context, user *User) error {
	row := &database.User{
		Username:      user.Username,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		EmailVerified: user.EmailVerified,
		IsActive:      user.Active,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if err := s.db.CreateUser(ctx, row); err != nil {
		return err
	}
	user.ID = row.ID
	return nil
}

func clientFromModel(row *database.OAuthClient) *Client {
	return &Client{
		ClientID:        row.ClientID,
		SecretHash:      row.ClientSecretHash,
		Name:            row.ClientName,
		Type:            row.ClientType,
		RedirectURIs:    row.RedirectURIs,
		GrantTypes:      row.AllowedGrantTypes,
		Scopes:          row.AllowedScopes,
		TokenAuthMethod: row.TokenEndpointAuthMethod,
		RequirePKCE:     row.RequirePKCE,
		AccessTokenTTL:  row.AccessTokenTTLSeconds,
		RefreshTokenTTL: row.RefreshTokenTTLSeconds,
		Active:          row.IsActive,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func clientToModel(client *Client, id uint) *database.OAuthClient {
	return &database.OAuthClient{
		ID:                      id,
		ClientID:                client.ClientID,
		ClientSecretHash:        client.SecretHash,
		ClientName:              client.Name,
		ClientType:              client.Type,
		RedirectURIs:            client.RedirectURIs,
		AllowedGrantTypes:       client.GrantTypes,
		AllowedScopes:           client.Scopes,
		TokenEndpointAuthMethod: client.TokenAuthMethod,
		RequirePKCE:             client.RequirePKCE,
		AccessTokenTTLSeconds:   client.AccessTokenTTL,
		RefreshTokenTTLSeconds:  client.RefreshTokenTTL,
		IsActive:                client.Active,
		CreatedAt:               client.CreatedAt,
		UpdatedAt:               client.UpdatedAt,
	}
}
