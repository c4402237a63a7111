package ratelimit

import (
	"MatchServer/config"
	"MatchServer/consts/redisKey"
	"MatchServer/pkg/logger"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// luaSlidingWindow 滑动窗口计数 Lua 脚本
// 原子性地完成 "过期重置 + 自增 + 判定"
// 参数：
//
//	KEYS[1]: 限流 key
//	ARGV[1]: 当前时间戳 (毫秒)
//	ARGV[2]: 窗口长度 (毫秒)
//	ARGV[3]: 窗口内最大次数
//	ARGV[4]: key 过期秒数
//
// 返回值：
//   - 1: 允许通过
//   - 0: 不允许通过
const luaSlidingWindow = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local info = redis.call('HMGET', key, 'count', 'window_start')
local count = tonumber(info[1])
local window_start = tonumber(info[2])

if count == nil or window_start == nil then
    count = 0
    window_start = now
end

-- 窗口过期，计数归零重新开窗
if now - window_start > window then
    count = 0
    window_start = now
end

count = count + 1
redis.call('HMSET', key, 'count', count, 'window_start', window_start)
redis.call('EXPIRE', key, ttl)

if count <= max then
    return 1
end
return 0
`

// RedisLimiter 基于 Redis 的滑动窗口限流器
// 多实例部署时共享计数；Redis 不可用时降级放行
type RedisLimiter struct {
	cfg    config.RateLimitConfig
	client *redis.Client

	// now 可注入，测试用
	now func() time.Time
}

// NewRedisLimiter 创建 Redis 限流器
func NewRedisLimiter(cfg config.RateLimitConfig, client *redis.Client) *RedisLimiter {
	return &RedisLimiter{cfg: cfg, client: client, now: time.Now}
}

// Allow 判断本次调用是否放行
func (l *RedisLimiter) Allow(ctx context.Context, userUUID, action string) (bool, error) {
	policy, ok := policyFor(l.cfg, action)
	if !ok {
		return true, nil
	}
	if l.client == nil {
		return true, nil
	}

	key := rediskey.UserActionRateLimitKey(action, userUUID)

	// key 过期时间取窗口的两倍，至少保底一分钟
	ttl := int64((2 * policy.WindowMs) / time.Second)
	if minTTL := int64(rediskey.RateLimitMinTTL / time.Second); ttl < minTTL {
		ttl = minTTL
	}

	// 独立短超时，防止 Redis 响应慢拖死请求链路
	redisCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	result, err := l.client.Eval(redisCtx, luaSlidingWindow, []string{key},
		l.now().UnixMilli(),
		policy.WindowMs.Milliseconds(),
		policy.Max,
		ttl,
	).Result()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			logger.Warn(ctx, "Redis 限流检查超时，降级放行",
				logger.String("key", key),
				logger.ErrorField("error", err),
			)
			return true, nil
		}
		logger.Error(ctx, "Redis 限流检查失败，降级放行",
			logger.String("key", key),
			logger.ErrorField("error", err),
		)
		return true, nil
	}

	allowedFlag, ok := result.(int64)
	if !ok {
		logger.Warn(ctx, "Redis 限流返回值类型错误，降级放行",
			logger.String("key", key),
			logger.Any("result", result),
		)
		return true, nil
	}
	return allowedFlag == 1, nil
}
