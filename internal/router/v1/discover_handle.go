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

// DiscoverHandler 发现页处理器
type DiscoverHandler struct {
	discoverService service.IDiscoverService
}

// NewDiscoverHandler 创建发现页处理器
func NewDiscoverHandler(discoverService service.IDiscoverService) *DiscoverHandler {
	return &DiscoverHandler{
		discoverService: discoverService,
	}
}

// Discover 拉取候选列表接口
// @Summary 拉取兼容度候选列表
// @Description 按评分倒序返回对当前用户可见的候选用户
// @Tags 发现页接口
// @Accept json
// @Produce json
// @Param orientations query []string false "取向过滤集合"
// @Param maxDistanceKm query number false "最大距离覆盖值(km)"
// @Param verifiedOnly query bool false "只看已认证用户"
// @Param limit query int false "返回条数(默认20)"
// @Success 200 {object} dto.DiscoverResponse
// @Router /api/v1/discover [get]
func (h *DiscoverHandler) Discover(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	// 1. 绑定查询参数
	var req dto.DiscoverRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 2. 调用服务层处理业务逻辑
	resp, err := h.discoverService.Discover(ctx, userUUID, &req)
	if err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "拉取候选列表服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	// 3. 返回成功响应
	result.Success(c, resp)
}
