package handler

import (
	"time"

	"github.com/cajachica/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
	verifier   *auth.CredentialVerifier
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtService *auth.JWTService, verifier *auth.CredentialVerifier) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		verifier:   verifier,
	}
}

// LoginRequest carries the login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token. Each login opens a fresh printing
// session; clients that need more than one concurrent session per login send
// the X-Session-ID header instead.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	SessionID   string    `json:"session_id"`
}

// Login authenticates the admin user and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if !h.verifier.Verify(req.Username, req.Password) {
		h.Unauthorized(c, "Invalid username or password")
		return
	}

	token, err := h.jwtService.Generate(req.Username)
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}

	h.Success(c, LoginResponse{
		AccessToken: token.Value,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		SessionID:   token.SessionID,
	})
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}
