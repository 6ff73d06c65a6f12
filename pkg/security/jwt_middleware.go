package security

import (
	"net/http"
	"strings"

	"assetdirectory/pkg/roles"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userID"
	roleKey   = "role"
)

// JWTMiddleware validates JWT and extracts claims.
func JWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		claims, err := ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.UserRole())
		c.Next()
	}
}

// Authorize lets the request through only when the caller holds one of the
// allowed roles.
func Authorize(allowed ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok || !roles.IsAuthorized(role, allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}

		c.Next()
	}
}

func RoleFromContext(c *gin.Context) (roles.Role, bool) {
	value, exists := c.Get(roleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(roles.Role)
	return role, ok
}

func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}
