package model

import "time"

// PrivacySettings 隐私设置，与 UserProfile 一对一。
// 约束：incognito=true 的用户不出现在任何人的候选池，也不能发起喜欢/消息。
type PrivacySettings struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	UserUuid string `gorm:"column:user_uuid;type:char(36);not null;uniqueIndex;comment:用户uuid"`

	Incognito      bool `gorm:"column:incognito;not null;default:0;comment:隐身模式"`
	HideDistance   bool `gorm:"column:hide_distance;not null;default:0;comment:隐藏距离"`
	ProfileVisible bool `gorm:"column:profile_visible;not null;default:1;comment:资料是否可见"`
	VerifiedOnly   bool `gorm:"column:verified_only;not null;default:0;comment:默认只看已认证用户"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PrivacySettings) TableName() string { return "privacy_settings" }
