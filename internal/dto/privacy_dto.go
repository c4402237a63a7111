package dto

// ==================== 隐私设置相关 DTO ====================

// PrivacySettingsView 隐私设置 DTO（读写共用结构，读侧全字段返回）
type PrivacySettingsView struct {
	Incognito      bool `json:"incognito"`      // 隐身模式
	HideDistance   bool `json:"hideDistance"`   // 隐藏距离
	ProfileVisible bool `json:"profileVisible"` // 资料是否可见
	VerifiedOnly   bool `json:"verifiedOnly"`   // 默认只看已认证用户
}

// UpdatePrivacyRequest 更新隐私设置请求 DTO
// 全部指针字段，nil 表示维持原值
type UpdatePrivacyRequest struct {
	Incognito      *bool `json:"incognito"`
	HideDistance   *bool `json:"hideDistance"`
	ProfileVisible *bool `json:"profileVisible"`
	VerifiedOnly   *bool `json:"verifiedOnly"`
}
