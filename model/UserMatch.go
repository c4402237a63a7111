package model

import "time"

// UserMatch 无向匹配关系。
// 存储规则：用户对排序为 (user_low, user_high) 规范键，
// uniqueIndex:uidx_low_high 即是并发双向喜欢下 "恰好一行" 的正确性保证，
// 不依赖调用方的检查顺序。
type UserMatch struct {
	Id       int64  `gorm:"column:id;primaryKey;comment:雪花id"`
	UserLow  string `gorm:"column:user_low;type:char(36);not null;uniqueIndex:uidx_low_high;comment:较小uuid"`
	UserHigh string `gorm:"column:user_high;type:char(36);not null;index;uniqueIndex:uidx_low_high;comment:较大uuid"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (UserMatch) TableName() string { return "user_match" }

// CanonicalPair 将一对用户 uuid 排序为规范键 (low, high)。
func CanonicalPair(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}
