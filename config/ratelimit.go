package config

import "time"

// RateLimitPolicy 单个动作的滑动窗口限流策略。
type RateLimitPolicy struct {
	Max      int           `json:"max" yaml:"max"`           // 窗口内最大次数
	WindowMs time.Duration `json:"windowMs" yaml:"windowMs"` // 窗口长度
}

// RateLimitConfig 按动作划分的限流策略表。
// key 为动作名（与 Handler 注册时使用的 action 一致）。
type RateLimitConfig struct {
	Policies map[string]RateLimitPolicy `json:"policies" yaml:"policies"`
}

// 动作名常量，Handler 与限流中间件共用。
const (
	ActionDiscover    = "discover"
	ActionLike        = "like"
	ActionSendMessage = "message:send"
	ActionReadHistory = "message:history"
	ActionMarkRead    = "message:mark_read"
	ActionTyping      = "typing"
	ActionBlock       = "block"
	ActionReport      = "report"
	ActionExport      = "data:export"
	ActionDelete      = "account:delete"
)

// DefaultRateLimitConfig 返回与线上一致的默认策略表。
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Policies: map[string]RateLimitPolicy{
			ActionDiscover:    {Max: 60, WindowMs: time.Minute},
			ActionLike:        {Max: 60, WindowMs: time.Minute},
			ActionSendMessage: {Max: 30, WindowMs: time.Minute},
			ActionReadHistory: {Max: 120, WindowMs: time.Minute},
			ActionMarkRead:    {Max: 120, WindowMs: time.Minute},
			ActionTyping:      {Max: 120, WindowMs: time.Minute},
			ActionBlock:       {Max: 30, WindowMs: time.Minute},
			ActionReport:      {Max: 10, WindowMs: time.Minute},
			ActionExport:      {Max: 2, WindowMs: time.Minute},
			ActionDelete:      {Max: 1, WindowMs: 5 * time.Minute},
		},
	}
}
