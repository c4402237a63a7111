package dto

// ==================== 喜欢与配对相关 DTO ====================

// LikeRequest 喜欢请求 DTO
type LikeRequest struct {
	TargetUuid string `json:"targetUuid" binding:"required,uuid"` // 目标用户UUID
}

// LikeResponse 喜欢响应 DTO
// Matched=true 时 MatchId 非空
type LikeResponse struct {
	Liked   bool   `json:"liked"`             // 喜欢是否记录成功
	Matched bool   `json:"matched"`           // 是否触发配对
	MatchId string `json:"matchId,omitempty"` // 配对ID（雪花id字符串）
}

// MatchListRequest 配对列表请求 DTO
type MatchListRequest struct {
	BeforeId string `form:"beforeId" json:"beforeId" binding:"omitempty,max=20"`  // 游标（上一页最后一条的 matchId）
	Limit    int    `form:"limit" json:"limit" binding:"omitempty,min=1,max=100"` // 返回条数
}

// MatchItem 配对摘要 DTO
type MatchItem struct {
	MatchId      string `json:"matchId"`      // 配对ID
	PeerUuid     string `json:"peerUuid"`     // 对方UUID
	PeerNickname string `json:"peerNickname"` // 对方昵称
	PeerVerified bool   `json:"peerVerified"` // 对方是否已认证
	MatchedAt    string `json:"matchedAt"`    // 配对时间 (RFC3339)
	UnreadCount  int64  `json:"unreadCount"`  // 来自对方的未读消息数
}

// MatchListResponse 配对列表响应 DTO
type MatchListResponse struct {
	Items      []*MatchItem `json:"items"`                // 配对列表
	NextCursor string       `json:"nextCursor,omitempty"` // 下一页游标，空表示没有更多
}

// LikerCountResponse 被喜欢计数响应 DTO
type LikerCountResponse struct {
	Count int64 `json:"count"` // 喜欢我的人数
}
