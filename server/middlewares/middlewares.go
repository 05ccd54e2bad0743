package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ErrorTokenAuthFail = 40101

	// UserIDKey is the gin context key under which the authenticated user's
	// id is stored after the JWT middleware ran.
	UserIDKey = "sub"
)

// JWT middleware reads the bearer token from the Authorization header,
// verifies it against the given secret and stores the token's "id" claim in
// the gin context. It aborts with 401 on a missing or invalid token.
func JWT(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": ErrorTokenAuthFail,
				"msg":  "missing bearer token",
			})
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": ErrorTokenAuthFail,
				"msg":  "invalid or expired token",
			})
			c.Abort()
			return
		}

		id, _ := claims["id"].(string)
		if id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": ErrorTokenAuthFail,
				"msg":  "token has no id claim",
			})
			c.Abort()
			return
		}

		c.Set(UserIDKey, id)
		c.Next()
	}
}
