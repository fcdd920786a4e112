package storage

import (
	"context"
	"sync"

	"github.com/rackleet/authserver/internal/common/errorx"
)

// MemoryStore implements the Store interface in process memory.
// Check-and-insert happens under a single lock, so uniqueness holds
// under concurrent registration.
type MemoryStore struct {
	mu sync.RWMutex

	clients    map[string]*Client
	users      map[string]*User
	userEmails map[string]string // email -> username
	nextUserID uint
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients:    make(map[string]*Client),
		users:      make(map[string]*User),
		userEmails: make(map[string]string),
	}
}

func (s *MemoryStore) GetClient(ctx context.Context, clientID string) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[clientID]
	if !ok {
		return nil, errorx.ErrClientNotFound
	}
	cp := *client
	return &cp, nil
}

func (s *MemoryStore) CreateClient(ctx context.Context, client *Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[client.ClientID]; exists {
		return errorx.ErrClientAlreadyExists
	}

	cp := *client
	s.clients[client.ClientID] = &cp
	return nil
}

func (s *MemoryStore) UpdateClient(ctx context.Context, client *Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[client.ClientID]; !exists {
		return errorx.ErrClientNotFound
	}

	cp := *client
	s.clients[client.ClientID] = &cp
	return nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, errorx.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return errorx.ErrDuplicateUser
	}
	if _, exists := s.userEmails[user.Email]; exists {
		return errorx.ErrDuplicateUser
	}

	s.nextUserID++
	user.ID = s.nextUserID

	cp := *user
	s.users[user.Username] = &cp
	s.userEmails[user.Email] = user.Username
	return nil
}
