package ratelimit

import (
	"MatchServer/config"
	"context"
	"sync"
	"time"
)

// windowState 单个 (用户, 动作) 的窗口状态
type windowState struct {
	windowStart time.Time
	count       int
}

// MemoryLimiter 进程内滑动窗口限流器
// 单实例部署的默认实现；多实例部署下计数不共享，需换用 RedisLimiter。
// key 空间通过惰性清扫回收，过期窗口不会随进程生命周期无限增长
type MemoryLimiter struct {
	cfg config.RateLimitConfig

	mu      sync.Mutex
	windows map[string]*windowState

	// now 可注入，测试用
	now func() time.Time

	lastSweep     time.Time
	sweepInterval time.Duration
}

// NewMemoryLimiter 创建进程内限流器
func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:           cfg,
		windows:       make(map[string]*windowState),
		now:           time.Now,
		sweepInterval: time.Minute,
	}
}

// Allow 判断本次调用是否放行
func (l *MemoryLimiter) Allow(_ context.Context, userUUID, action string) (bool, error) {
	policy, ok := policyFor(l.cfg, action)
	if !ok {
		return true, nil
	}

	now := l.now()
	key := action + ":" + userUUID

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)

	state, exists := l.windows[key]
	if !exists {
		state = &windowState{windowStart: now}
		l.windows[key] = state
	}

	// 窗口过期，计数归零重新开窗
	if now.Sub(state.windowStart) > policy.WindowMs {
		state.windowStart = now
		state.count = 0
	}

	state.count++
	return state.count <= policy.Max, nil
}

// sweepLocked 惰性清扫所有已过期窗口，调用方持锁
// 过期判定用全表最大窗口长度，宁可多留一轮也不误删活跃窗口
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.sweepInterval {
		return
	}
	l.lastSweep = now

	var maxWindow time.Duration
	for _, policy := range l.cfg.Policies {
		if policy.WindowMs > maxWindow {
			maxWindow = policy.WindowMs
		}
	}
	for key, state := range l.windows {
		if now.Sub(state.windowStart) > maxWindow {
			delete(l.windows, key)
		}
	}
}
