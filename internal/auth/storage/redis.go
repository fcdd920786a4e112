package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rackleet/authserver/internal/common/errorx"

	"github.com/redis/go-redis/v9"
)

// key prefixes for the records this store keeps
const (
	clientPrefix    = "authserver:client:"
	userPrefix      = "authserver:user:"
	userEmailPrefix = "authserver:user:email:"
	userIDCounter   = "authserver:user:next_id"
)

// RedisStore implements the Store interface on Redis. Creation uses
// SETNX so uniqueness is enforced by the server, not by a read followed
// by a write.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store instance
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) GetClient(ctx context.Context, clientID string) (*Client, error) {
	data, err := s.client.Get(ctx, clientPrefix+clientID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorx.ErrClientNotFound
		}
		return nil, err
	}

	var client Client
	if err := json.Unmarshal(data, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *RedisStore) CreateClient(ctx context.Context, client *Client) error {
	data, err := json.Marshal(client)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, clientPrefix+client.ClientID, data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errorx.ErrClientAlreadyExists
	}
	return nil
}

func (s *RedisStore) UpdateClient(ctx context.Context, client *Client) error {
	exists, err := s.client.Exists(ctx, clientPrefix+client.ClientID).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return errorx.ErrClientNotFound
	}

	data, err := json.Marshal(client)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, clientPrefix+client.ClientID, data, 0).Err()
}

func (s *RedisStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	data, err := s.client.Get(ctx, userPrefix+username).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorx.ErrUserNotFound
		}
		return nil, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RedisStore) CreateUser(ctx context.Context, user *User) error {
	id, err := s.client.Incr(ctx, userIDCounter).Result()
	if err != nil {
		return err
	}
	user.ID = uint(id)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, userPrefix+user.Username, data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errorx.ErrDuplicateUser
	}

	// Claim the email as well; roll back the username record if another
	// user already holds it.
	ok, err = s.client.SetNX(ctx, userEmailPrefix+user.Email, user.Username, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		_ = s.client.Del(ctx, userPrefix+user.Username).Err()
		return errorx.ErrDuplicateUser
	}
	return nil
}
