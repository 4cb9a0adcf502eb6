package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ArowuTest/sorteos-backend/internal/config"
	"github.com/ArowuTest/sorteos-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// BusinessIDKey is the gin context key holding the authenticated tenant
const BusinessIDKey = "businessID"

// JWTAuthMiddleware creates a gin middleware for JWT authentication.
// The token subject is the business every downstream read and write is scoped to.
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWT.Secret)

	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "Authorization header must start with Bearer "})
			return
		}

		claims, err := jwt.ParseToken(strings.TrimSpace(authHeader[len(bearerSchema):]), secret)
		if err != nil {
			slog.Warn("Token validation failed", "error", err, "path", c.Request.URL.Path)
			message := "Invalid token"
			if errors.Is(err, jwt.ErrExpired) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": message})
			return
		}

		c.Set(BusinessIDKey, claims.BusinessID)
		c.Next()
	}
}

// BusinessID returns the tenant set by JWTAuthMiddleware
func BusinessID(c *gin.Context) string {
	return c.GetString(BusinessIDKey)
}
