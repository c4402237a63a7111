package model

import "time"

// 拉黑来源
const (
	BlockSourceUser      = "user"
	BlockSourceModerator = "moderator"
)

// UserBlock 单向拉黑边。
// 策略层面对称：任一方向存在拉黑即禁止双方全部互动。
// 解除拉黑不在核心范围内，因此没有软删除字段。
type UserBlock struct {
	Id          int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	BlockerUuid string `gorm:"column:blocker_uuid;type:char(36);not null;uniqueIndex:uidx_blocker_blocked;comment:拉黑方uuid"`
	BlockedUuid string `gorm:"column:blocked_uuid;type:char(36);not null;index;uniqueIndex:uidx_blocker_blocked;comment:被拉黑方uuid"`
	Source      string `gorm:"column:source;type:varchar(32);comment:来源 user/moderator"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserBlock) TableName() string { return "user_block" }
