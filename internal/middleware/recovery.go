package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smeyjes51/ration-curator/internal/models"
)

// Recovery Panic 恢复中间件
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.String("request_id", RequestID(c)),
					zap.Any("panic", err),
					zap.ByteString("stack", debug.Stack()))

				models.AbortWithError(c, http.StatusInternalServerError, fmt.Sprint(err))
			}
		}()
		c.Next()
	}
}
