package ratelimit

import (
	"MatchServer/config"
	"context"
)

// Limiter 按 (用户, 动作) 的滑动窗口限流器
// 实现契约：
//   - 同一窗口内第 max+1 次调用被拒绝
//   - 距窗口起点超过 windowMs 后计数归零重新开窗
//   - 未配置策略的动作一律放行
//   - 后端故障时降级放行（限流是保护层，不能成为故障点）
type Limiter interface {
	// Allow 判断本次调用是否放行
	Allow(ctx context.Context, userUUID, action string) (bool, error)
}

// policyFor 查询动作策略，ok=false 表示该动作不限流
func policyFor(cfg config.RateLimitConfig, action string) (config.RateLimitPolicy, bool) {
	policy, ok := cfg.Policies[action]
	if !ok || policy.Max <= 0 || policy.WindowMs <= 0 {
		return config.RateLimitPolicy{}, false
	}
	return policy, true
}
