package repository

import (
	"math/rand"
	"time"
)

// getRandomExpireTime 生成带随机抖动的过期时间
// baseExpire: 基础过期时间
// 返回: 基础过期时间 ± 10% 的随机时间，避免缓存同时失效
func getRandomExpireTime(baseExpire time.Duration) time.Duration {
	jitterRange := float64(baseExpire) * 0.1
	jitter := time.Duration(rand.Float64()*float64(jitterRange)*2 - float64(jitterRange))

	return baseExpire + jitter
}
