package dto

// ==================== 聊天媒体相关 DTO ====================

// PresignUploadRequest 媒体上传预签名请求 DTO
type PresignUploadRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255"`    // 原始文件名（仅用于提取扩展名）
	ContentType string `json:"contentType" binding:"required,max=100"` // MIME 类型
}

// PresignUploadResponse 媒体上传预签名响应 DTO
type PresignUploadResponse struct {
	ObjectName  string `json:"objectName"`  // 对象名
	UploadURL   string `json:"uploadUrl"`   // 预签名 PUT 地址
	PublicURL   string `json:"publicUrl"`   // 上传完成后的访问地址
	ExpiresIn   int64  `json:"expiresIn"`   // 上传地址有效期（秒）
	MaxFileSize int64  `json:"maxFileSize"` // 允许的最大文件字节数
}
