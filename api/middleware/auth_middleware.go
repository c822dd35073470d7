package middleware

import (
	"net/http"
	"strings"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// Auth 验证 Bearer 令牌并将调用者身份写入上下文
func Auth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondError(c, http.StatusUnauthorized, "No Authorization request header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			common.RespondError(c, http.StatusBadRequest, "Authorization field format error")
			c.Abort()
			return
		}

		if parts[0] != "Bearer" {
			common.RespondError(c, http.StatusUnauthorized, "Unsupported authentication scheme")
			c.Abort()
			return
		}

		claims, err := jwtService.ParseToken(parts[1])
		if err != nil {
			common.RespondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		userIDValue, ok := claims["user_id"]
		if !ok {
			common.RespondError(c, http.StatusUnauthorized, "user_id not found in token claims")
			c.Abort()
			return
		}
		userID, ok := userIDValue.(float64)
		if !ok {
			common.RespondError(c, http.StatusUnauthorized, "user_id in token is not a valid number")
			c.Abort()
			return
		}

		username, _ := claims["username"].(string)

		c.Set(ContextUserIDKey, uint(userID))
		c.Set(ContextUsernameKey, username)

		c.Next()
	}
}
