package middleware

import (
	"net/http"

	"studiohq/config"

	"github.com/gin-gonic/gin"
)

// AllowedOrigin is a pure function mapping a request origin to the origin the
// response should echo: the origin itself when allow-listed, otherwise the
// configured default. No process-wide state.
func AllowedOrigin(cfg *config.CORSConfig, origin string) string {
	for _, o := range cfg.AllowedOrigins {
		if o == origin {
			return origin
		}
	}
	return cfg.DefaultOrigin
}

// CORS sets the cross-origin headers for the SPA and answers preflights.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := AllowedOrigin(cfg, c.GetHeader("Origin"))
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Vary", "Origin")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
