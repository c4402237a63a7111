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

// LikeHandler 喜欢与配对处理器
type LikeHandler struct {
	likeService service.ILikeService
}

// NewLikeHandler 创建喜欢与配对处理器
func NewLikeHandler(likeService service.ILikeService) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
	}
}

// PostLike 喜欢某个用户接口
// @Summary 喜欢某个用户
// @Description 记录单向喜欢；对方也喜欢过自己时触发配对
// @Tags 喜欢接口
// @Accept json
// @Produce json
// @Param request body dto.LikeRequest true "喜欢请求"
// @Success 200 {object} dto.LikeResponse
// @Router /api/v1/likes [post]
func (h *LikeHandler) PostLike(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	var req dto.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.likeService.RecordLike(ctx, userUUID, req.TargetUuid)
	if err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "记录喜欢服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, resp)
}

// ListMatches 获取配对列表接口
// @Summary 获取配对列表
// @Description 游标分页返回当前用户的全部配对（最新在前）
// @Tags 喜欢接口
// @Accept json
// @Produce json
// @Param beforeId query string false "游标（上一页最后一条的 matchId）"
// @Param limit query int false "返回条数(默认20)"
// @Success 200 {object} dto.MatchListResponse
// @Router /api/v1/matches [get]
func (h *LikeHandler) ListMatches(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	var req dto.MatchListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.likeService.ListMatches(ctx, userUUID, &req)
	if err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "获取配对列表服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, resp)
}

// CountLikers 获取喜欢我的人数接口
// @Summary 获取喜欢我的人数
// @Description 返回喜欢当前用户的人数（带缓存，不返回具体名单）
// @Tags 喜欢接口
// @Produce json
// @Success 200 {object} dto.LikerCountResponse
// @Router /api/v1/likes/count [get]
func (h *LikeHandler) CountLikers(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	resp, err := h.likeService.CountLikers(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "获取喜欢人数服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, resp)
}
