package handler

import (
	"net/http"
	"time"

	"github.com/rackleet/authserver/internal/auth"
	"github.com/rackleet/authserver/internal/auth/storage"
	"github.com/rackleet/authserver/internal/common/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientHandler exposes the client registry over HTTP.
type ClientHandler struct {
	logger  *zap.Logger
	clients *auth.ClientService
}

// NewClientHandler creates a new client management handler
func NewClientHandler(logger *zap.Logger, clients *auth.ClientService) *ClientHandler {
	return &ClientHandler{
		logger:  logger.Named("apiserver.handler.client"),
		clients: clients,
	}
}

// Register mounts the client management routes
func (h *ClientHandler) Register(r gin.IRouter) {
	r.POST("/api/clients", h.Create)
	r.GET("/api/clients/:clientId", h.Get)
	r.PUT("/api/clients/:clientId", h.Update)
	r.DELETE("/api/clients/:clientId", h.Delete)
}

// Create handles POST /api/clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	res, err := h.clients.Register(c.Request.Context(), &req)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, registrationResponse(res))
}

// Get handles GET /api/clients/:clientId
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clients.Get(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, infoResponse(client))
}

// Update handles PUT /api/clients/:clientId
func (h *ClientHandler) Update(c *gin.Context) {
	var req dto.ClientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	client, err := h.clients.Update(c.Request.Context(), c.Param("clientId"), &req)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, infoResponse(client))
}

// Delete handles DELETE /api/clients/:clientId
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clients.Deactivate(c.Request.Context(), c.Param("clientId")); err != nil {
		RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func registrationResponse(res *auth.RegisterResult) *dto.ClientRegistrationResponse {
	return &dto.ClientRegistrationResponse{
		ClientID:                res.Client.ClientID,
		ClientSecret:            res.ClientSecret,
		ClientName:              res.Client.Name,
		ClientType:              res.Client.Type,
		RedirectURIs:            res.Client.RedirectURIs,
		AllowedGrantTypes:       res.Client.GrantTypes,
		AllowedScopes:           res.Client.Scopes,
		TokenEndpointAuthMethod: res.Client.TokenAuthMethod,
		RequirePKCE:             res.Client.RequirePKCE,
		AccessTokenTTLSeconds:   res.Client.AccessTokenTTL,
		RefreshTokenTTLSeconds:  res.Client.RefreshTokenTTL,
		CreatedAt:               res.Client.CreatedAt.Format(time.RFC3339),
	}
}

func infoResponse(client *storage.Client) *dto.ClientInfoResponse {
	return &dto.ClientInfoResponse{
		ClientID:                client.ClientID,
		ClientName:              client.Name,
		ClientType:              client.Type,
		RedirectURIs:            client.RedirectURIs,
		AllowedGrantTypes:       client.GrantTypes,
		AllowedScopes:           client.Scopes,
		TokenEndpointAuthMethod: client.TokenAuthMethod,
		RequirePKCE:             client.RequirePKCE,
		AccessTokenTTLSeconds:   client.AccessTokenTTL,
		RefreshTokenTTLSeconds:  client.RefreshTokenTTL,
		CreatedAt:               client.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               client.UpdatedAt.Format(time.RFC3339),
	}
}
