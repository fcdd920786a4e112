package handler

import (
	"net/http"
	"time"

	"github.com/rackleet/authserver/internal/auth"
	"github.com/rackleet/authserver/internal/auth/jwt"
	"github.com/rackleet/authserver/internal/auth/storage"
	"github.com/rackleet/authserver/internal/common/dto"
	"github.com/rackleet/authserver/internal/common/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes user registration and login.
type UserHandler struct {
	logger     *zap.Logger
	users      *auth.UserService
	jwtService *jwt.Service
}

// NewUserHandler creates a new user account handler
func NewUserHandler(logger *zap.Logger, users *auth.UserService, jwtService *jwt.Service) *UserHandler {
	return &UserHandler{
		logger:     logger.Named("apiserver.handler.user"),
		users:      users,
		jwtService: jwtService,
	}
}

// Register mounts the user routes
func (h *UserHandler) Register(r gin.IRouter) {
	r.POST("/api/users/register", h.RegisterUser)
	r.POST("/api/users/login", h.Login)
}

// RegisterUser handles POST /api/users/register
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req dto.UserRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse(user))
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithValidationError(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		h.logger.Error("token signing failed", zap.Uint("user_id", user.ID), zap.Error(err))
		RespondWithError(c, errorx.ErrServerError)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.jwtService.Duration().Seconds()),
		User:        userResponse(user),
	})
}

func userResponse(user *storage.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt.Format(time.RFC3339),
	}
}
