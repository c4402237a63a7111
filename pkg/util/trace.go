package util

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderXRequestID = "X-Request-ID"

// TraceLogger 追踪中间件，生成或获取 trace_id 并存入 Gin 上下文
func TraceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 尝试从请求头拿（防止是 Nginx 传过来的）
		traceId := c.GetHeader(HeaderXRequestID)

		// 2. 如果没有，自己生成一个
		if traceId == "" {
			traceId = uuid.New().String()
		}

		// 3. 放入 Gin 的上下文，供后续 Handler 使用
		c.Set("trace_id", traceId)

		// 4. 放入响应头，方便前端/客户端拿着 ID 来排障
		c.Header(HeaderXRequestID, traceId)

		c.Next()
	}
}

// NewUUID 生成新的 UUID
func NewUUID() string {
	return uuid.New().String()
}

// DetachTraceContext 派生一个脱离请求生命周期的 context，
// 只保留日志需要的请求标识字段。异步任务用它避免被请求取消波及
func DetachTraceContext(parent context.Context) context.Context {
	ctx := context.Background()
	if parent == nil {
		return ctx
	}
	if traceId := parent.Value("trace_id"); traceId != nil {
		ctx = context.WithValue(ctx, "trace_id", traceId)
	}
	if userUUID := parent.Value("user_uuid"); userUUID != nil {
		ctx = context.WithValue(ctx, "user_uuid", userUUID)
	}
	return ctx
}
