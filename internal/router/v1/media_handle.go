package v1

import (
	"MatchServer/consts"
	"MatchServer/internal/dto"
	"MatchServer/internal/middleware"
	"MatchServer/pkg/logger"
	"MatchServer/pkg/minio"
	"MatchServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// MediaHandler 媒体上传处理器
// 只负责签发预签名地址，文件本体由客户端直传对象存储
type MediaHandler struct {
	storage *minio.MinIOClient
}

// NewMediaHandler 创建媒体上传处理器
// storage 为 nil 时表示对象存储未启用，接口返回内部错误
func NewMediaHandler(storage *minio.MinIOClient) *MediaHandler {
	return &MediaHandler{
		storage: storage,
	}
}

// PresignUpload 获取上传预签名地址接口
// @Summary 获取媒体上传预签名地址
// @Description 为图片消息签发直传对象存储的 PUT 地址
// @Tags 媒体接口
// @Accept json
// @Produce json
// @Param request body dto.PresignUploadRequest true "预签名请求"
// @Success 200 {object} dto.PresignUploadResponse
// @Router /api/v1/media/presign [post]
func (h *MediaHandler) PresignUpload(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := middleware.GetUserUUID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return
	}

	if h.storage == nil {
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	var req dto.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	presigned, err := h.storage.PresignUpload(ctx, userUUID, req.FileName, req.ContentType)
	if err != nil {
		logger.Error(ctx, "签发上传地址失败",
			logger.String("user_uuid", userUUID),
			logger.String("content_type", req.ContentType),
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	result.Success(c, &dto.PresignUploadResponse{
		ObjectName:  presigned.ObjectName,
		UploadURL:   presigned.UploadURL,
		PublicURL:   presigned.PublicURL,
		ExpiresIn:   int64(presigned.ExpiresIn.Seconds()),
		MaxFileSize: h.storage.MaxFileSize(),
	})
}
