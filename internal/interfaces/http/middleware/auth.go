package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cajachica/backend/internal/infrastructure/auth"
	"github.com/cajachica/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUsernameKey = "jwt_username"
	JWTSessionKey  = "jwt_session_id"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// SessionHeaderKey lets a client pin the printing session explicitly, e.g.
// two browser tabs sharing one login that must not share a print attempt.
const SessionHeaderKey = "X-Session-ID"

// JWTAuthMiddleware validates the bearer token and stores its claims in the
// gin context
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithCode(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTSessionKey, claims.SessionID)
		c.Next()
	}
}

// GetUsername returns the authenticated username, or empty when anonymous
func GetUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}

// GetSessionID returns the workflow session identity for this request. The
// explicit session header wins over the login session from the token.
func GetSessionID(c *gin.Context) string {
	if header := c.GetHeader(SessionHeaderKey); header != "" {
		return header
	}
	return c.GetString(JWTSessionKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	abortWithCode(c, dto.ErrCodeUnauthorized, message)
}

func abortWithCode(c *gin.Context, code, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, requestID))
}
