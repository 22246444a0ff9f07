package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"hub/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const claimsContextKey = "claims"

// Claims is the identity the external provider asserts about the caller.
// The engine never manages users itself; it only consumes these claims.
type Claims struct {
	Username string `json:"preferred_username"`
	jwt.RegisteredClaims
}

// UserID returns the provider's stable subject identifier
func (c *Claims) UserID() string {
	return c.Subject
}

// AuthMiddleware verifies the bearer token and stores the claims on the
// request context. Requests without a valid token are rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(config.JWTSecret), nil
		})
		if err != nil || !parsed.Valid || claims.Username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// GetUserFromRequest returns the verified claims of the current request.
// When no claims are present it writes the 401 itself so handlers can
// simply return.
func GetUserFromRequest(c *gin.Context) (*Claims, error) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, fmt.Errorf("no claims on request")
	}
	claims, ok := value.(*Claims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, fmt.Errorf("invalid claims on request")
	}
	return claims, nil
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}
