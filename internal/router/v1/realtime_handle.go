package v1

import (
	"net/http"

	"MatchServer/consts"
	"MatchServer/internal/middleware"
	"MatchServer/internal/relay"
	"MatchServer/pkg/logger"
	"MatchServer/pkg/result"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RealtimeHandler 实时通道处理器
// 同一用户可以同时持有多条 SSE/WS 信道（多端在线），事件对全部信道扇出
type RealtimeHandler struct {
	registry *relay.Registry
}

// NewRealtimeHandler 创建实时通道处理器
func NewRealtimeHandler(registry *relay.Registry) *RealtimeHandler {
	return &RealtimeHandler{
		registry: registry,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域已由 CORS 中间件统一把关
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Subscribe SSE 订阅接口
// @Summary 订阅实时事件流 (SSE)
// @Description 以 text/event-stream 推送 message/typing/receipt:update 事件
// @Tags 实时接口
// @Produce text/event-stream
// @Router /api/v1/realtime/subscribe [get]
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	channel, err := relay.NewSSEChannel(c.Writer)
	if err != nil {
		logger.Warn(ctx, "SSE 流式写入不可用",
			logger.String("user_uuid", userUUID),
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	if !h.registry.Subscribe(userUUID, channel) {
		// 服务正在退出，拒绝新订阅
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}
	defer h.registry.Unsubscribe(userUUID, channel)

	// 阻塞直到客户端断开或服务退出
	channel.Serve(c.Request.Context())
}

// WebSocket WS 订阅接口
// @Summary 订阅实时事件流 (WebSocket)
// @Description 升级为 WebSocket 连接，以 JSON 帧推送事件
// @Tags 实时接口
// @Router /api/v1/realtime/ws [get]
func (h *RealtimeHandler) WebSocket(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时 gorilla 已写入了 HTTP 错误响应
		logger.Warn(ctx, "WebSocket 升级失败",
			logger.String("user_uuid", userUUID),
			logger.ErrorField("error", err),
		)
		return
	}

	channel := relay.NewWSChannel(conn)
	if !h.registry.Subscribe(userUUID, channel) {
		channel.Close()
		return
	}
	defer h.registry.Unsubscribe(userUUID, channel)

	channel.Run(c.Request.Context())
}
