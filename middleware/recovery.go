package middleware

import (
	"net/http"

	"github.com/umarmrv/bima-calc-api/utils"

	"github.com/gin-gonic/gin"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.LogPanic(recovered, "HTTP Request")

		utils.AbortError(c, http.StatusInternalServerError, "internal server error")
	})
}
