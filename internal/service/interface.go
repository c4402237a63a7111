package service

import (
	"MatchServer/internal/dto"
	"context"
)

// ==================== 发现页 Service ====================

// IDiscoverService 候选人筛选服务接口
type IDiscoverService interface {
	// Discover 为请求方筛选并评分候选人
	Discover(ctx context.Context, userUUID string, req *dto.DiscoverRequest) (*dto.DiscoverResponse, error)
}

// ==================== 喜欢与配对 Service ====================

// ILikeService 喜欢与配对服务接口
type ILikeService interface {
	// RecordLike 记录一次喜欢并检测双向配对
	RecordLike(ctx context.Context, fromUUID, toUUID string) (*dto.LikeResponse, error)

	// ListMatches 查询配对列表（游标分页）
	ListMatches(ctx context.Context, userUUID string, req *dto.MatchListRequest) (*dto.MatchListResponse, error)

	// CountLikers 查询喜欢我的人数
	CountLikers(ctx context.Context, userUUID string) (*dto.LikerCountResponse, error)
}

// ==================== 单聊 Service ====================

// IChatService 单聊服务接口
type IChatService interface {
	// SendMessage 发送消息：门禁 -> 落库 -> 实时下发
	SendMessage(ctx context.Context, senderUUID, peerUUID string, req *dto.SendMessageRequest) (*dto.MessageItem, error)

	// History 拉取会话历史（游标分页，倒序）
	History(ctx context.Context, userUUID, peerUUID string, req *dto.HistoryRequest) (*dto.HistoryResponse, error)

	// MarkRead 标记对方发来的消息为已读并向对方广播回执
	MarkRead(ctx context.Context, userUUID, peerUUID string, req *dto.MarkReadRequest) (*dto.MarkReadResponse, error)

	// Typing 广播输入中状态（瞬时信号，不落库）
	Typing(ctx context.Context, userUUID, peerUUID string, active bool) error
}

// ==================== 拉黑与举报 Service ====================

// IBlockService 拉黑服务接口
type IBlockService interface {
	// Block 创建拉黑边。普通用户以自己名义拉黑；
	// 运营账号可通过 req.OnBehalfOf 以他人名义创建，非运营填写该字段会被拒绝
	Block(ctx context.Context, actorUUID string, actorModerator bool, req *dto.BlockRequest) error
}

// IReportService 举报服务接口
type IReportService interface {
	// Report 提交举报
	Report(ctx context.Context, reporterUUID string, req *dto.ReportRequest) (*dto.ReportResponse, error)
}

// ==================== 隐私设置 Service ====================

// IPrivacyService 隐私设置服务接口
type IPrivacyService interface {
	// Get 查询隐私设置（无记录时返回默认值）
	Get(ctx context.Context, userUUID string) (*dto.PrivacySettingsView, error)

	// Update 局部更新隐私设置并返回更新后的完整视图
	Update(ctx context.Context, userUUID string, req *dto.UpdatePrivacyRequest) (*dto.PrivacySettingsView, error)
}
