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

// PrivacyHandler 隐私设置处理器
type PrivacyHandler struct {
	privacyService service.IPrivacyService
}

// NewPrivacyHandler 创建隐私设置处理器
func NewPrivacyHandler(privacyService service.IPrivacyService) *PrivacyHandler {
	return &PrivacyHandler{
		privacyService: privacyService,
	}
}

// Get 查询隐私设置接口
// @Summary 查询隐私设置
// @Description 无记录时返回默认值（资料可见、其余关闭）
// @Tags 隐私接口
// @Produce json
// @Success 200 {object} dto.PrivacySettingsView
// @Router /api/v1/privacy [get]
func (h *PrivacyHandler) Get(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	view, err := h.privacyService.Get(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "查询隐私设置服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, view)
}

// Update 更新隐私设置接口
// @Summary 更新隐私设置
// @Description 局部更新：只修改请求中出现的字段
// @Tags 隐私接口
// @Accept json
// @Produce json
// @Param request body dto.UpdatePrivacyRequest true "更新隐私设置请求"
// @Success 200 {object} dto.PrivacySettingsView
// @Router /api/v1/privacy [put]
func (h *PrivacyHandler) Update(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	var req dto.UpdatePrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.privacyService.Update(ctx, userUUID, &req)
	if err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "更新隐私设置服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, view)
}
