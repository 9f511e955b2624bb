package middleware

import (
	"net/http"
	"strings"
	"time"

	"studiohq/config"
	"studiohq/internal/auth"
	"studiohq/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer JWT and then checks the auth session row
// it points at, so revoked or expired sessions are rejected per request even
// when the token signature is still valid.
func AuthRequired(cfg *config.JWTConfig, sessions *repository.AuthSessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		sess, err := sessions.GetByTokenID(claims.ID)
		if err != nil || !sess.Valid(time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session revoked or expired"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token_id", claims.ID)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID from context (must be used after AuthRequired).
func GetUserID(c *gin.Context) uint {
	v, _ := c.Get("user_id")
	if v == nil {
		return 0
	}
	return v.(uint)
}

// GetRole returns the authenticated role from context.
func GetRole(c *gin.Context) string {
	v, _ := c.Get("role")
	if v == nil {
		return ""
	}
	return v.(string)
}

// GetTokenID returns the auth session token id (jti) from context.
func GetTokenID(c *gin.Context) string {
	v, _ := c.Get("token_id")
	if v == nil {
		return ""
	}
	return v.(string)
}
