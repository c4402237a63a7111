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

// ModerationHandler 拉黑与举报处理器
type ModerationHandler struct {
	blockService  service.IBlockService
	reportService service.IReportService
}

// NewModerationHandler 创建拉黑与举报处理器
func NewModerationHandler(blockService service.IBlockService, reportService service.IReportService) *ModerationHandler {
	return &ModerationHandler{
		blockService:  blockService,
		reportService: reportService,
	}
}

// Block 拉黑用户接口
// @Summary 拉黑用户
// @Description 拉黑后双方互不可见、互不可达；运营账号可通过 onBehalfOf 代用户拉黑
// @Tags 治理接口
// @Accept json
// @Produce json
// @Param request body dto.BlockRequest true "拉黑请求"
// @Router /api/v1/blocks [post]
func (h *ModerationHandler) Block(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	var req dto.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.blockService.Block(ctx, userUUID, middleware.IsModerator(c), &req); err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "拉黑用户服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, nil)
}

// Report 举报用户接口
// @Summary 举报用户
// @Description 对同一目标存在待处理举报时返回冲突
// @Tags 治理接口
// @Accept json
// @Produce json
// @Param request body dto.ReportRequest true "举报请求"
// @Success 200 {object} dto.ReportResponse
// @Router /api/v1/reports [post]
func (h *ModerationHandler) Report(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.reportService.Report(ctx, userUUID, &req)
	if err != nil {
		if consts.IsNonServerError(consts.ExtractErrorCode(err)) {
			result.Fail(c, nil, consts.ExtractErrorCode(err))
			return
		}

		logger.Error(ctx, "举报用户服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, resp)
}
