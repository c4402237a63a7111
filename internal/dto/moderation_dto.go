package dto

// ==================== 拉黑与举报相关 DTO ====================

// BlockRequest 拉黑请求 DTO
// OnBehalfOf 仅运营账号可填：以该用户的名义创建拉黑边
type BlockRequest struct {
	TargetUuid string `json:"targetUuid" binding:"required,uuid"`  // 目标用户UUID
	OnBehalfOf string `json:"onBehalfOf" binding:"omitempty,uuid"` // 被代理的拉黑方UUID（运营专用）
}

// ReportRequest 举报请求 DTO
type ReportRequest struct {
	TargetUuid string `json:"targetUuid" binding:"required,uuid"`                                                    // 目标用户UUID
	Reason     string `json:"reason" binding:"required,oneof=spam harassment fake_profile inappropriate_content other"` // 举报原因
	Detail     string `json:"detail" binding:"omitempty,max=1024"`                                                   // 补充说明
}

// ReportResponse 举报响应 DTO
type ReportResponse struct {
	ReportId int64 `json:"reportId"` // 举报单ID
}
