package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const claimsContextKey = "auth_claims"

// Middleware validates the bearer token and stores the claims on the context.
func Middleware(tokens *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingToken.Error()})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must use Bearer scheme"})
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// It must run after Middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the validated claims, or nil when unauthenticated.
func ClaimsFromContext(c *gin.Context) *Claims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*Claims)
	return claims
}
