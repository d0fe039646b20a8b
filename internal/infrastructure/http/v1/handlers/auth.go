package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	appctx "depo/internal/core/context"
	"depo/internal/domain/auth"
	"depo/internal/infrastructure/http/v1/dto"
)

// Authenticator is the login use case.
type Authenticator interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.TokenPair, *auth.User, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service Authenticator
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service Authenticator) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, user, err := h.service.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{Tokens: tokens, User: dto.FromUser(user)})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := appctx.GetUser(c.Request.Context())
	h.OK(c, gin.H{
		"id":       user.UserID,
		"username": user.Username,
		"isAdmin":  user.IsAdmin,
	})
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)
	protected.GET("/me", h.Me)
}
