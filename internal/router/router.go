package router

import (
	"time"

	"MatchServer/config"
	"MatchServer/internal/middleware"
	"MatchServer/internal/ratelimit"
	v1 "MatchServer/internal/router/v1"
	"MatchServer/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 路由所需的全部处理器（依赖注入）
type Handlers struct {
	Discover   *v1.DiscoverHandler
	Like       *v1.LikeHandler
	Chat       *v1.ChatHandler
	Realtime   *v1.RealtimeHandler
	Moderation *v1.ModerationHandler
	Privacy    *v1.PrivacyHandler
	Media      *v1.MediaHandler
}

// InitRouter 初始化路由
func InitRouter(handlers *Handlers, limiter ratelimit.Limiter) *gin.Engine {
	r := gin.New()

	// 恢复中间件
	r.Use(middleware.GinRecovery())

	// 追踪中间件 (生成 trace_id)
	r.Use(util.TraceLogger())

	// 客户端 IP 中间件
	r.Use(middleware.ClientIPMiddleware())

	// 日志中间件
	r.Use(middleware.GinLogger())

	// Prometheus 监控中间件
	r.Use(middleware.PrometheusMiddleware())

	// 跨域中间件
	r.Use(middleware.CorsMiddleware())

	// 健康检查（无需认证）
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Prometheus 指标暴露接口
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由组（全部需要认证）
	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	// 实时长连接不套请求超时（SSE/WS 本来就是常驻连接）
	realtime := api.Group("/realtime")
	{
		realtime.GET("/subscribe", handlers.Realtime.Subscribe)
		realtime.GET("/ws", handlers.Realtime.WebSocket)
	}

	// 普通短请求统一 10s 超时
	api.Use(middleware.TimeoutMiddleware(10 * time.Second))
	{
		// 发现页
		api.GET("/discover",
			middleware.ActionRateLimit(limiter, config.ActionDiscover),
			handlers.Discover.Discover)

		// 喜欢与配对
		api.POST("/likes",
			middleware.ActionRateLimit(limiter, config.ActionLike),
			handlers.Like.PostLike)
		api.GET("/likes/count", handlers.Like.CountLikers)
		api.GET("/matches", handlers.Like.ListMatches)

		// 单聊
		chat := api.Group("/chat/:peerUuid")
		{
			chat.POST("/messages",
				middleware.ActionRateLimit(limiter, config.ActionSendMessage),
				handlers.Chat.SendMessage)
			chat.GET("/history",
				middleware.ActionRateLimit(limiter, config.ActionReadHistory),
				handlers.Chat.History)
			chat.POST("/read",
				middleware.ActionRateLimit(limiter, config.ActionMarkRead),
				handlers.Chat.MarkRead)
			chat.POST("/typing",
				middleware.ActionRateLimit(limiter, config.ActionTyping),
				handlers.Chat.Typing)
		}

		// 治理
		api.POST("/blocks",
			middleware.ActionRateLimit(limiter, config.ActionBlock),
			handlers.Moderation.Block)
		api.POST("/reports",
			middleware.ActionRateLimit(limiter, config.ActionReport),
			handlers.Moderation.Report)

		// 隐私设置
		api.GET("/privacy", handlers.Privacy.Get)
		api.PUT("/privacy", handlers.Privacy.Update)

		// 媒体上传
		api.POST("/media/presign", handlers.Media.PresignUpload)
	}

	return r
}
