package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reelview-admin/internal/apperrors"
	"reelview-admin/response"
)

// GlobalErrorMiddleware 全局错误中间件，客户端只看到 AppError 的 Message，Cause 只写日志
func GlobalErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, err := range c.Errors {
			var appErr *apperrors.AppError
			if errors.As(err.Err, &appErr) {
				if appErr.Cause != nil {
					logger.Debug("Request failed",
						zap.String("path", c.Request.URL.Path),
						zap.Int("status", appErr.Code),
						zap.Error(appErr.Cause))
				}
				c.AbortWithStatusJSON(appErr.Code, response.ErrorFromAppError(appErr))
				return
			}
		}

		logger.Error("Unhandled request error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(c.Errors.Last().Err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error("System error"))
	}
}
