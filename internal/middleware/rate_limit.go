package middleware

import (
	"MatchServer/consts"
	"MatchServer/internal/ratelimit"
	"MatchServer/pkg/logger"
	"MatchServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// ActionRateLimit 按 (用户, 动作) 的限流中间件
// 需要在 JWTAuthMiddleware 之后使用；每个敏感路由注册自己的动作名，
// 限流策略由配置中的 Policies 决定，未配置的动作由限流器直接放行
//
// 使用示例：
//
//	api.POST("/likes", ActionRateLimit(limiter, config.ActionLike), handler)
func ActionRateLimit(limiter ratelimit.Limiter, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userUUID, exists := GetUserUUID(c)
		if !exists || userUUID == "" {
			// 该中间件应挂在认证之后；拿不到用户说明挂载顺序有误，放行并告警
			logger.Warn(NewContextWithGin(c), "无法获取用户 UUID，跳过限流检查",
				logger.String("path", c.Request.URL.Path),
				logger.String("action", action),
			)
			c.Next()
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), userUUID, action)
		if err != nil {
			// 限流器内部已降级放行，这里只记录
			logger.Warn(NewContextWithGin(c), "限流检查异常，降级放行",
				logger.String("user_uuid", userUUID),
				logger.String("action", action),
				logger.ErrorField("error", err),
			)
		} else if !allowed {
			logger.Warn(NewContextWithGin(c), "用户请求被限流",
				logger.String("user_uuid", userUUID),
				logger.String("action", action),
				logger.String("path", c.Request.URL.Path),
			)
			result.Abort(c, consts.CodeTooManyRequests)
			return
		}

		c.Next()
	}
}
