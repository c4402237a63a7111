package dto

// ==================== 发现页相关 DTO ====================

// DiscoverRequest 候选人筛选请求 DTO
// 全部字段可选，缺省时使用请求方画像里的偏好设置
type DiscoverRequest struct {
	Orientations   []string `form:"orientations" json:"orientations" binding:"omitempty,max=10,dive,min=1,max=32"` // 取向过滤集合
	WantFriendship *bool    `form:"wantFriendship" json:"wantFriendship"`                                          // 意向过滤-交友
	WantRomance    *bool    `form:"wantRomance" json:"wantRomance"`                                                // 意向过滤-恋爱
	WantPoly       *bool    `form:"wantPoly" json:"wantPoly"`                                                      // 意向过滤-多元关系
	MaxDistanceKm  float64  `form:"maxDistanceKm" json:"maxDistanceKm" binding:"omitempty,gt=0,max=20000"`         // 最大距离覆盖值
	VerifiedOnly   *bool    `form:"verifiedOnly" json:"verifiedOnly"`                                              // 只看已认证用户
	City           string   `form:"city" json:"city" binding:"omitempty,max=64"`                                   // 城市过滤
	Limit          int      `form:"limit" json:"limit" binding:"omitempty,min=1,max=50"`                           // 返回条数
}

// CandidateItem 候选人摘要 DTO
type CandidateItem struct {
	UserUuid     string   `json:"userUuid"`     // 用户UUID
	Nickname     string   `json:"nickname"`     // 昵称
	Pronouns     string   `json:"pronouns"`     // 人称代词
	Gender       string   `json:"gender"`       // 性别
	Bio          string   `json:"bio"`          // 个人简介
	City         string   `json:"city"`         // 城市
	Age          *int     `json:"age"`          // 年龄（未填为 null）
	Orientations []string `json:"orientations"` // 取向标签
	Verified     bool     `json:"verified"`     // 是否已认证
	Score        int      `json:"score"`        // 兼容度评分 0-100
	DistanceKm   *int     `json:"distanceKm"`   // 距离（公里取整；对方隐藏距离或不可计算时为 null）
}

// DiscoverResponse 候选人筛选响应 DTO
type DiscoverResponse struct {
	Candidates []*CandidateItem `json:"candidates"` // 按评分倒序的候选列表
}
