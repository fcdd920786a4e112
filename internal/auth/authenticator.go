package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rackleet/authserver/internal/auth/secrets"
	"github.com/rackleet/authserver/internal/auth/storage"
	"github.com/rackleet/authserver/internal/common/errorx"

	"go.uber.org/zap"
)

// Token endpoint authentication methods (RFC 6749 §2.3).
const (
	AuthMethodBasic = "client_secret_basic"
	AuthMethodPost  = "client_secret_post"
	AuthMethodNone  = "none"
)

// Client types.
const (
	ClientTypeConfidential = "confidential"
	ClientTypePublic       = "public"
)

// Authenticator establishes a client's identity from a token-endpoint
// request. Exactly one credential presentation is accepted per request;
// presenting both a Basic header and a form secret is rejected before
// any lookup happens.
type Authenticator struct {
	logger *zap.Logger
	store  storage.Store
}

// NewAuthenticator creates a new client authenticator
func NewAuthenticator(logger *zap.Logger, store storage.Store) *Authenticator {
	return &Authenticator{
		logger: logger.Named("auth.client"),
		store:  store,
	}
}

// Authenticate inspects the request and returns the authenticated
// client. Malformed or ambiguous credential presentations map to
// invalid_request; everything about a bad identity or credential maps
// to invalid_client.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*storage.Client, error) {
	if err := r.ParseForm(); err != nil {
		return nil, errorx.ErrInvalidRequest.WithDescription("malformed request body")
	}

	header := r.Header.Get("Authorization")
	hasBasic := len(header) > 6 && strings.EqualFold(header[:6], "Basic ")
	hasPostSecret := r.PostForm.Has("client_secret")

	if hasBasic && hasPostSecret {
		return nil, errorx.ErrInvalidRequest.WithDescription("multiple client authentication methods used")
	}

	switch {
	case hasBasic:
		return a.authenticateBasic(ctx, header)
	case hasPostSecret:
		return a.verifySecret(ctx, r.PostForm.Get("client_id"), r.PostForm.Get("client_secret"), AuthMethodPost)
	case r.PostForm.Has("client_id"):
		return a.authenticateNone(ctx, r.PostForm.Get("client_id"))
	default:
		return nil, errorx.ErrInvalidClient.WithDescription("no client credentials provided")
	}
}

// authenticateBasic handles client_secret_basic. Per RFC 6749 appendix
// B the id and secret are form-urlencoded before being joined and
// base64-encoded, so each half is unescaped independently after the
// split on the first colon.
func (a *Authenticator) authenticateBasic(ctx context.Context, header string) (*storage.Client, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[6:]))
	if err != nil {
		return nil, errorx.ErrInvalidClient.WithDescription("malformed basic authentication header")
	}

	idPart, secretPart, found := strings.Cut(string(raw), ":")
	if !found {
		return nil, errorx.ErrInvalidClient.WithDescription("malformed basic authentication header")
	}

	clientID, err := url.QueryUnescape(idPart)
	if err != nil {
		return nil, errorx.ErrInvalidClient.WithDescription("malformed basic authentication header")
	}
	clientSecret, err := url.QueryUnescape(secretPart)
	if err != nil {
		return nil, errorx.ErrInvalidClient.WithDescription("malformed basic authentication header")
	}

	return a.verifySecret(ctx, clientID, clientSecret, AuthMethodBasic)
}

// authenticateNone handles public clients. Identity is asserted, not
// proven; grant handling relies on PKCE for these clients.
func (a *Authenticator) authenticateNone(ctx context.Context, clientID string) (*storage.Client, error) {
	client, err := a.lookupClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if client.TokenAuthMethod != AuthMethodNone {
		a.logger.Debug("confidential client attempted unauthenticated request",
			zap.String("client_id", clientID))
		return nil, errorx.ErrInvalidClient.WithDescription("client authentication required")
	}

	return client, nil
}

func (a *Authenticator) verifySecret(ctx context.Context, clientID, clientSecret, method string) (*storage.Client, error) {
	client, err := a.lookupClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if client.TokenAuthMethod != method {
		a.logger.Debug("auth method mismatch",
			zap.String("client_id", clientID),
			zap.String("registered", client.TokenAuthMethod),
			zap.String("used", method))
		return nil, errorx.ErrInvalidClient.WithDescription("client is not registered for this authentication method")
	}

	if !secrets.VerifySecret(clientSecret, client.SecretHash) {
		a.logger.Debug("client secret verification failed", zap.String("client_id", clientID))
		return nil, errorx.ErrInvalidClient.WithDescription("invalid client credentials")
	}

	return client, nil
}

// lookupClient resolves a client id to an active record. Unknown and
// deactivated clients produce the same message, so callers cannot probe
// which ids exist.
func (a *Authenticator) lookupClient(ctx context.Context, clientID string) (*storage.Client, error) {
	if clientID == "" {
		return nil, errorx.ErrInvalidClient.WithDescription("missing client_id")
	}

	client, err := a.store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, errorx.ErrClientNotFound) {
			return nil, errorx.ErrInvalidClient.WithDescription("client not found or inactive")
		}
		a.logger.Error("client lookup failed", zap.String("client_id", clientID), zap.Error(err))
		return nil, err
	}
	if !client.Active {
		return nil, errorx.ErrInvalidClient.WithDescription("client not found or inactive")
	}

	return client, nil
}
