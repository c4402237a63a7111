package v1

import (
	"MatchServer/consts"
	"MatchServer/internal/dto"
	"MatchServer/internal/middleware"
	"MatchServer/internal/service"
	"MatchServer/pkg/logger"
	"MatchServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// ChatHandler 单聊处理器
type ChatHandler struct {
	chatService service.IChatService
}

// NewChatHandler 创建单聊处理器
func NewChatHandler(chatService service.IChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// peerFromPath 从路径参数中提取对端 UUID
func peerFromPath(c *gin.Context) (string, bool) {
	peerUUID := c.Param("peerUuid")
	return peerUUID, peerUUID != ""
}

// SendMessage 发送消息接口
// @Summary 发送消息
// @Description 向已配对的对方发送消息，落库后实时下发
// @Tags 单聊接口
// @Accept json
// @Produce json
// @Param peerUuid path string true "对方UUID"
// @Param request body dto.SendMessageRequest true "发送消息请求"
// @Success 200 {object} dto.MessageItem
// @Router /api/v1/chat/{peerUuid}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}
	peerUUID, ok := peerFromPath(c)
	if !ok {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	item, err := h.chatService.SendMessage(ctx, userUUID, peerUUID, &req)
	if err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "发送消息服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, item)
}

// History 拉取会话历史接口
// @Summary 拉取会话历史
// @Description 游标分页返回与对方的历史消息（最新在前）
// @Tags 单聊接口
// @Produce json
// @Param peerUuid path string true "对方UUID"
// @Param beforeId query string false "游标（上一页最后一条的消息ID）"
// @Param limit query int false "返回条数(默认50,最大200)"
// @Success 200 {object} dto.HistoryResponse
// @Router /api/v1/chat/{peerUuid}/history [get]
func (h *ChatHandler) History(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}
	peerUUID, ok := peerFromPath(c)
	if !ok {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	var req dto.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.chatService.History(ctx, userUUID, peerUUID, &req)
	if err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "拉取会话历史服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, resp)
}

// MarkRead 标记已读接口
// @Summary 标记消息已读
// @Description 将对方发来的未读消息标记为已读并向对方广播已读回执
// @Tags 单聊接口
// @Accept json
// @Produce json
// @Param peerUuid path string true "对方UUID"
// @Param request body dto.MarkReadRequest false "标记已读请求"
// @Success 200 {object} dto.MarkReadResponse
// @Router /api/v1/chat/{peerUuid}/read [post]
func (h *ChatHandler) MarkRead(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}
	peerUUID, ok := peerFromPath(c)
	if !ok {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 空 body 等价于"全部标记"
	var req dto.MarkReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			result.Fail(c, nil, consts.CodeParamError)
			return
		}
	}

	resp, err := h.chatService.MarkRead(ctx, userUUID, peerUUID, &req)
	if err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "标记已读服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, resp)
}

// Typing 输入中状态接口
// @Summary 广播输入中状态
// @Description 向对方在线会话广播"正在输入"瞬时信号，不落库
// @Tags 单聊接口
// @Accept json
// @Produce json
// @Param peerUuid path string true "对方UUID"
// @Param request body dto.TypingRequest true "输入中状态请求"
// @Router /api/v1/chat/{peerUuid}/typing [post]
func (h *ChatHandler) Typing(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}
	peerUUID, ok := peerFromPath(c)
	if !ok {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	var req dto.TypingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.chatService.Typing(ctx, userUUID, peerUUID, req.Active); err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "广播输入状态服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, nil)
}
