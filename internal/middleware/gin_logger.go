package middleware

import (
	"context"
	"errors"
	"net"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"MatchServer/consts"
	"MatchServer/pkg/logger"
	"MatchServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// NewContextWithGin 从 gin.Context 创建包含 trace_id、user_uuid 的 context.Context
// 用于将 Gin 上下文中的请求标识传递到日志系统
func NewContextWithGin(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if traceId, exists := c.Get("trace_id"); exists {
		ctx = context.WithValue(ctx, "trace_id", traceId)
	}
	if userUUID, exists := c.Get("user_uuid"); exists {
		ctx = context.WithValue(ctx, "user_uuid", userUUID)
	}
	if clientIP, exists := c.Get("client_ip"); exists {
		ctx = context.WithValue(ctx, "client_ip", clientIP)
	}
	return ctx
}

// GinLogger 接收 gin 框架默认的日志
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		status := c.Writer.Status()

		// 只记录服务端错误(5xx)和慢请求(>2s),正常请求不记录
		if status >= 500 || cost > 2*time.Second {
			ctx := NewContextWithGin(c)
			logger.Warn(ctx, "慢请求或服务端错误",
				logger.Int("status", status),
				logger.String("method", c.Request.Method),
				logger.String("path", path),
				logger.String("query", query),
				logger.String("ip", GetClientIP(c)),
				logger.String("user-agent", c.Request.UserAgent()),
				logger.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
				logger.Duration("cost", cost),
			)
		}
	}
}

// GinRecovery 捕获 Handler panic，记录堆栈并返回统一错误响应
// broken pipe 类错误说明客户端已断开，只记录不再写响应
func GinRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := NewContextWithGin(c)

				var brokenPipe bool
				if ne, ok := err.(*net.OpError); ok {
					var se *os.SyscallError
					if errors.As(ne.Err, &se) {
						msg := strings.ToLower(se.Error())
						if strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer") {
							brokenPipe = true
						}
					}
				}

				if brokenPipe {
					logger.Warn(ctx, "连接已断开",
						logger.String("path", c.Request.URL.Path),
						logger.Any("error", err),
					)
					c.Abort()
					return
				}

				logger.Error(ctx, "请求处理发生 panic",
					logger.String("path", c.Request.URL.Path),
					logger.Any("error", err),
					logger.String("stack", string(debug.Stack())),
				)
				if !c.Writer.Written() {
					result.Fail(c, nil, consts.CodeInternalError)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
