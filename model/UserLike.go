package model

import "time"

// UserLike 单向喜欢边。
// 约束：uniqueIndex:uidx_from_to 保证同一有向对只有一条记录；只增不改。
type UserLike struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	FromUuid string `gorm:"column:from_uuid;type:char(36);not null;uniqueIndex:uidx_from_to;comment:发起方uuid"`
	ToUuid   string `gorm:"column:to_uuid;type:char(36);not null;index;uniqueIndex:uidx_from_to;comment:接收方uuid"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserLike) TableName() string { return "user_like" }
