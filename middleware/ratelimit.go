package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/umarmrv/bima-calc-api/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware ограничивает число запросов в фиксированном окне:
// для авторизованных — по user_id, для анонимных — по IP.
// Счётчики в Redis (INCR + EXPIRE).
func RateLimitMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := utils.GetRedis()
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		var key string
		if userID, exists := c.Get("user_id"); exists {
			key = fmt.Sprintf("ratelimit:user:%v", userID)
		} else {
			key = "ratelimit:ip:" + c.ClientIP()
		}

		ctx := utils.RedisCtx()
		cnt, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis недоступен — запросы не блокируем
			c.Next()
			return
		}
		if cnt == 1 {
			rdb.Expire(ctx, key, window)
		}
		if cnt > int64(limit) {
			utils.AbortError(c, http.StatusTooManyRequests, "too many requests")
			return
		}
		c.Next()
	}
}
