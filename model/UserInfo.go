package model

import (
	"time"

	"gorm.io/gorm"
)

// UserInfo 用户主档。
// 由身份系统首次校验通过时创建；封禁/影子封禁由风控侧写入。
type UserInfo struct {
	Id           int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid         string `gorm:"column:uuid;type:char(36);not null;uniqueIndex;comment:用户uuid"`
	Nickname     string `gorm:"column:nickname;type:varchar(64);not null;comment:昵称"`
	NotifyHandle string `gorm:"column:notify_handle;type:varchar(128);comment:外部通知通道句柄"`
	Verified     bool   `gorm:"column:verified;not null;default:0;comment:是否已认证"`
	Banned       bool   `gorm:"column:banned;not null;default:0;comment:是否封禁"`
	ShadowBanned bool   `gorm:"column:shadow_banned;not null;default:0;comment:是否影子封禁(不出现在他人候选池)"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (UserInfo) TableName() string { return "user_info" }
