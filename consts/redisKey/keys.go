package rediskey

import (
	"fmt"
	"time"
)

// ==================== TTL 常量 ====================

const (
	// LikeCountTTL 被喜欢计数缓存 TTL
	LikeCountTTL = 1 * time.Hour

	// DailyMatchCounterTTL 每日匹配计数 TTL（过期自动清零，留 48h 便于统计拉取）
	DailyMatchCounterTTL = 48 * time.Hour

	// RateLimitMinTTL 限流 key 最小过期时间
	RateLimitMinTTL = 60 * time.Second
)

// ==================== Key 构造函数 ====================

// LikeCountKey 生成被喜欢计数 Key: social:like_count:{user_uuid}
func LikeCountKey(userUUID string) string {
	return fmt.Sprintf("social:like_count:%s", userUUID)
}

// DailyMatchCounterKey 生成每日匹配计数 Key: social:match_count:{yyyymmdd}
func DailyMatchCounterKey(day time.Time) string {
	return fmt.Sprintf("social:match_count:%s", day.Format("20060102"))
}

// UserActionRateLimitKey 生成用户动作限流 Key: social:rate:limit:{action}:{user_uuid}
func UserActionRateLimitKey(action, userUUID string) string {
	return fmt.Sprintf("social:rate:limit:%s:%s", action, userUUID)
}
