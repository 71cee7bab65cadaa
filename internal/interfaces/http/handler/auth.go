package handler

import (
	"github.com/fabos/server/internal/application/identity"
	"github.com/fabos/server/internal/infrastructure/auth"
	"github.com/fabos/server/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	blacklist   auth.TokenBlacklist
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		blacklist:   blacklist,
		logger:      logger,
	}
}

// LogoutRequest allows revoking every session of the user instead of just
// the current token
type LogoutRequest struct {
	AllDevices bool `json:"all_devices"`
}

// LogoutResponse confirms a logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// Login authenticates a user with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tokens)
}

// Logout revokes the current access token. With all_devices set, every
// token issued to the user before now is invalidated, which covers
// outstanding refresh tokens too.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	ctx := c.Request.Context()

	if claims.ID != "" {
		if err := h.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			h.logger.Error("Failed to revoke token",
				zap.String("jti", claims.ID),
				zap.Error(err))
			h.InternalError(c, "Failed to log out")
			return
		}
	}

	if req.AllDevices {
		if err := h.blacklist.RevokeAllForUser(ctx, claims.UserID, auth.UserRevocationTTL); err != nil {
			h.logger.Error("Failed to revoke user sessions",
				zap.String("user_id", claims.UserID),
				zap.Error(err))
			h.InternalError(c, "Failed to log out")
			return
		}
	}

	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}
