package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bpmutter/tappdin-backend/internal/pkg/jwtutil"
	"github.com/bpmutter/tappdin-backend/internal/transport/http/response"
)

const ContextUserIDKey = "user_id"

// AuthJWT rejects the request before any handler runs when the bearer token
// is missing or unverifiable. Invalid and expired tokens get the same message
// on purpose; the caller learns nothing about why verification failed.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
