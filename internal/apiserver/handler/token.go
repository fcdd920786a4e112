package handler

import (
	"net/http"

	"github.com/rackleet/authserver/internal/auth"
	"github.com/rackleet/authserver/internal/common/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenHandler exposes the token-endpoint client authentication check.
type TokenHandler struct {
	logger        *zap.Logger
	authenticator *auth.Authenticator
}

// NewTokenHandler creates a new token endpoint handler
func NewTokenHandler(logger *zap.Logger, authenticator *auth.Authenticator) *TokenHandler {
	return &TokenHandler{
		logger:        logger.Named("apiserver.handler.token"),
		authenticator: authenticator,
	}
}

// Register mounts the token routes
func (h *TokenHandler) Register(r gin.IRouter) {
	r.POST("/api/token/introspect-client", h.IntrospectClient)
}

// IntrospectClient handles POST /api/token/introspect-client. It runs
// the same credential check the token endpoint performs and reports the
// identity it established.
func (h *TokenHandler) IntrospectClient(c *gin.Context) {
	client, err := h.authenticator.Authenticate(c.Request.Context(), c.Request)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClientIntrospectionResponse{
		ClientID:                client.ClientID,
		ClientName:              client.Name,
		ClientType:              client.Type,
		TokenEndpointAuthMethod: client.TokenAuthMethod,
	})
}
