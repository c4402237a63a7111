package middleware

import (
	"context"
	"time"

	"MatchServer/consts"
	"MatchServer/pkg/logger"
	"MatchServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// TimeoutMiddleware 请求超时控制中间件
// 不另开 Goroutine，依赖下游感知 Context 过期：
// Handler 里的 DB/Redis 调用发现 ctx 超时会自动返回 deadline exceeded
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		// 后置兜底：下游太慢连响应都没写出去时，由中间件统一返回超时
		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			logCtx := NewContextWithGin(c)
			logger.Warn(logCtx, "网关层强制超时断开",
				logger.String("path", c.Request.URL.Path),
				logger.Duration("timeout", timeout),
			)
			result.Fail(c, nil, consts.CodeTimeoutError)
		}
	}
}
