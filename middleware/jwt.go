package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/umarmrv/bima-calc-api/utils"

	"github.com/gin-gonic/gin"
)

func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.AbortError(c, http.StatusUnauthorized, "missing or invalid Authorization header")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		// Проверяем черный список токенов (logout)
		rdb := utils.GetRedis()
		if rdb != nil {
			if _, err := rdb.Get(utils.RedisCtx(), "blacklist:"+token).Result(); err == nil {
				utils.AbortError(c, http.StatusUnauthorized, "token has been revoked")
				return
			}
		}

		claims, err := utils.ParseJWT(token, os.Getenv("JWT_SECRET"))
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		// refresh-токен не даёт доступа к API
		if utils.TokenType(claims) != utils.TokenTypeAccess {
			utils.AbortError(c, http.StatusUnauthorized, "access token required")
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, "invalid token payload")
			return
		}
		c.Set("user_id", int(userID))
		c.Next()
	}
}
