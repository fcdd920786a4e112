package database

import (
	"context"
	"errors"

	"github.com/rackleet/authserver/internal/common/errorx"

	"gorm.io/gorm"
)

// Database defines the persistence operations of the authorization server.
type Database interface {
	// Close closes the database connection.
	Close() error

	// CreateClient inserts a new client. Uniqueness of client_id is
	// enforced by the database; a violation returns ErrClientAlreadyExists.
	CreateClient(ctx context.Context, client *OAuthClient) error

	// GetClientByClientID returns the client row, active or not.
	GetClientByClientID(ctx context.Context, clientID string) (*OAuthClient, error)

	// UpdateClient persists all fields of an already-loaded client row.
	UpdateClient(ctx context.Context, client *OAuthClient) error

	// CreateUser inserts a new user. Uniqueness of username and email is
	// enforced by the database; a violation returns ErrDuplicateUser.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByUsername returns the user row, active or not.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// crud carries the operations shared by all drivers. Every driver opens
// its gorm.DB with TranslateError so unique-constraint violations
// surface as gorm.ErrDuplicatedKey regardless of the backend.
type crud struct {
	db *gorm.DB
}

func (c *crud) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *crud) CreateClient(ctx context.Context, client *OAuthClient) error {
	err := c.db.WithContext(ctx).Create(client).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.ErrClientAlreadyExists
	}
	return err
}

func (c *crud) GetClientByClientID(ctx context.Context, clientID string) (*OAuthClient, error) {
	var client OAuthClient
	err := c.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *crud) UpdateClient(ctx context.Context, client *OAuthClient) error {
	return c.db.WithContext(ctx).Save(client).Error
}

func (c *crud) CreateUser(ctx context.Context, user *User) error {
	err := c.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errorx.ErrDuplicateUser
	}
	return err
}

func (c *crud) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := c.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OAuthClient{}, &User{}, &AuthorizationCode{})
}
