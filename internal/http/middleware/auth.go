package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Konaisya/build-service/internal/auth"
	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/service"
)

const claimsKey = "authClaims"

// TokenVerifier decodes and validates an access token.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// Auth requires a valid Bearer token and stores its claims in the context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := verifier.VerifyToken(token)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminOnly rejects requests whose token does not carry the ADMIN role.
// Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := MustClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
			return
		}
		if claims.Role != string(model.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func MustClaims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
