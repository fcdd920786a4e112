package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rackleet/authserver/internal/auth/secrets"
	"github.com/rackleet/authserver/internal/auth/storage"
	"github.com/rackleet/authserver/internal/common/dto"
	"github.com/rackleet/authserver/internal/common/errorx"

	"go.uber.org/zap"
)

// UserService manages end-user accounts.
type UserService struct {
	logger *zap.Logger
	store  storage.Store
}

// NewUserService creates a new user account service
func NewUserService(logger *zap.Logger, store storage.Store) *UserService {
	return &UserService{
		logger: logger.Named("auth.user"),
		store:  store,
	}
}

// Register creates a user account. Username and email collisions are
// reported as a duplicate-user conflict by the store.
func (s *UserService) Register(ctx context.Context, req *dto.UserRegistrationRequest) (*storage.User, error) {
	hash, err := secrets.HashSecret(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, errorx.ErrServerError
	}

	now := time.Now().UTC()
	user := &storage.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames,
// deactivated accounts and wrong passwords all produce the same error,
// so the response does not reveal which usernames exist.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*storage.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errorx.ErrUserNotFound) {
			return nil, errorx.ErrAccessDenied.WithDescription("invalid username or password")
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}

	if !user.Active || !secrets.VerifySecret(password, user.PasswordHash) {
		return nil, errorx.ErrAccessDenied.WithDescription("invalid username or password")
	}

	return user, nil
}
