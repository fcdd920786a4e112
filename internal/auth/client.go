package auth

import (
	"context"
	"net/url"
	"time"

	"github.com/rackleet/authserver/internal/auth/secrets"
	"github.com/rackleet/authserver/internal/auth/storage"
	"github.com/rackleet/authserver/internal/common/dto"
	"github.com/rackleet/authserver/internal/common/errorx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default token lifetimes in seconds.
const (
	DefaultAccessTokenTTL  = 3600
	DefaultRefreshTokenTTL = 2592000 // 30 days
)

var allowedGrantTypes = map[string]bool{
	"authorization_code": true,
	"client_credentials": true,
	"refresh_token":      true,
	"device_code":        true,
}

var allowedAuthMethods = map[string]bool{
	AuthMethodBasic: true,
	AuthMethodPost:  true,
	AuthMethodNone:  true,
}

// ClientService manages the client registry: registration, reads,
// metadata updates and deactivation.
type ClientService struct {
	logger *zap.Logger
	store  storage.Store
}

// NewClientService creates a new client registry service
func NewClientService(logger *zap.Logger, store storage.Store) *ClientService {
	return &ClientService{
		logger: logger.Named("auth.registry"),
		store:  store,
	}
}

// RegisterResult pairs the stored record with the plaintext secret,
// which exists only for the duration of the registration response.
type RegisterResult struct {
	Client       *storage.Client
	ClientSecret string
}

// Register validates the requested metadata, generates credentials and
// persists the client. Public clients are forced to the "none" auth
// method with PKCE required; confidential clients get a generated
// secret that is returned exactly once.
func (s *ClientService) Register(ctx context.Context, req *dto.ClientRegistrationRequest) (*RegisterResult, error) {
	if req.ClientType != ClientTypeConfidential && req.ClientType != ClientTypePublic {
		return nil, errorx.ErrInvalidRequest.WithDescription("clientType must be confidential or public")
	}
	if len(req.AllowedGrantTypes) == 0 {
		return nil, errorx.ErrInvalidRequest.WithDescription("allowedGrantTypes must not be empty")
	}
	for _, gt := range req.AllowedGrantTypes {
		if !allowedGrantTypes[gt] {
			return nil, errorx.ErrInvalidRequest.WithDescription("unsupported grant type: %s", gt)
		}
	}
	for _, uri := range req.RedirectURIs {
		if err := validateRedirectURI(uri); err != nil {
			return nil, err
		}
	}

	method, err := resolveAuthMethod(req.ClientType, req.TokenEndpointAuthMethod)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &storage.Client{
		ClientID:        uuid.New().String(),
		Name:            req.ClientName,
		Type:            req.ClientType,
		RedirectURIs:    req.RedirectURIs,
		GrantTypes:      req.AllowedGrantTypes,
		Scopes:          req.AllowedScopes,
		TokenAuthMethod: method,
		RequirePKCE:     req.ClientType == ClientTypePublic,
		AccessTokenTTL:  DefaultAccessTokenTTL,
		RefreshTokenTTL: DefaultRefreshTokenTTL,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.AccessTokenTTLSeconds != nil {
		client.AccessTokenTTL = *req.AccessTokenTTLSeconds
	}
	if req.RefreshTokenTTLSeconds != nil {
		client.RefreshTokenTTL = *req.RefreshTokenTTLSeconds
	}

	var plaintext string
	if req.ClientType == ClientTypeConfidential {
		plaintext, err = secrets.NewToken()
		if err != nil {
			s.logger.Error("secret generation failed", zap.Error(err))
			return nil, errorx.ErrServerError
		}
		client.SecretHash, err = secrets.HashSecret(plaintext)
		if err != nil {
			s.logger.Error("secret hashing failed", zap.Error(err))
			return nil, errorx.ErrServerError
		}
	}

	if err := s.store.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client registered",
		zap.String("client_id", client.ClientID),
		zap.String("client_type", client.Type),
		zap.String("auth_method", client.TokenAuthMethod))
	return &RegisterResult{Client: client, ClientSecret: plaintext}, nil
}

// Get returns an active client. Deactivated clients are
// indistinguishable from unregistered ones.
func (s *ClientService) Get(ctx context.Context, clientID string) (*storage.Client, error) {
	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !client.Active {
		return nil, errorx.ErrClientNotFound
	}
	return client, nil
}

// Update applies a partial metadata update. Identity, type, auth
// method and credentials are immutable; list fields given in the
// request replace the stored lists wholesale.
func (s *ClientService) Update(ctx context.Context, clientID string, req *dto.ClientUpdateRequest) (*storage.Client, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		client.Name = *req.ClientName
	}
	if req.RedirectURIs != nil {
		for _, uri := range req.RedirectURIs {
			if err := validateRedirectURI(uri); err != nil {
				return nil, err
			}
		}
		client.RedirectURIs = req.RedirectURIs
	}
	if req.AllowedGrantTypes != nil {
		for _, gt := range req.AllowedGrantTypes {
			if !allowedGrantTypes[gt] {
				return nil, errorx.ErrInvalidRequest.WithDescription("unsupported grant type: %s", gt)
			}
		}
		client.GrantTypes = req.AllowedGrantTypes
	}
	if req.AllowedScopes != nil {
		client.Scopes = req.AllowedScopes
	}
	if req.AccessTokenTTLSeconds != nil {
		client.AccessTokenTTL = *req.AccessTokenTTLSeconds
	}
	if req.RefreshTokenTTLSeconds != nil {
		client.RefreshTokenTTL = *req.RefreshTokenTTLSeconds
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateClient(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Deactivate soft-deletes a client. The record stays in the store but
// every read and authentication path treats it as nonexistent.
func (s *ClientService) Deactivate(ctx context.Context, clientID string) error {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return err
	}

	client.Active = false
	client.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateClient(ctx, client); err != nil {
		return err
	}

	s.logger.Info("client deactivated", zap.String("client_id", clientID))
	return nil
}

// resolveAuthMethod checks the requested token endpoint auth method
// against the client type, applying the defaults when none is given:
// client_secret_basic for confidential clients, none for public ones.
func resolveAuthMethod(clientType, method string) (string, error) {
	if method == "" {
		if clientType == ClientTypePublic {
			return AuthMethodNone, nil
		}
		return AuthMethodBasic, nil
	}
	if !allowedAuthMethods[method] {
		return "", errorx.ErrInvalidRequest.WithDescription("unsupported token endpoint auth method: %s", method)
	}
	if clientType == ClientTypePublic && method != AuthMethodNone {
		return "", errorx.ErrInvalidRequest.WithDescription("public clients must use the none auth method")
	}
	if clientType == ClientTypeConfidential && method == AuthMethodNone {
		return "", errorx.ErrInvalidRequest.WithDescription("confidential clients must authenticate")
	}
	return method, nil
}

// validateRedirectURI enforces the registration rules: absolute URI,
// no fragment, and https everywhere except loopback hosts.
func validateRedirectURI(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return errorx.ErrInvalidRequest.WithDescription("redirect URI must be absolute: %s", raw)
	}
	if u.Fragment != "" {
		return errorx.ErrInvalidRequest.WithDescription("redirect URI must not contain a fragment: %s", raw)
	}
	if u.Scheme != "https" {
		host := u.Hostname()
		if host != "localhost" && host != "127.0.0.1" {
			return errorx.ErrInvalidRequest.WithDescription("redirect URI must use https: %s", raw)
		}
	}
	return nil
}
