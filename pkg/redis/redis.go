package redis

import (
	"context"
	"time"

	"MatchServer/config"

	"github.com/redis/go-redis/v9"
)

var global *redis.Client

// Client 返回全局客户端（未初始化时为 nil）。
// 业务层必须对 nil 客户端做降级处理（跳过缓存，直查 MySQL）。
func Client() *redis.Client {
	return global
}

// ReplaceGlobal 设置全局客户端，需在进程启动时调用一次。
func ReplaceGlobal(c *redis.Client) {
	global = c
}

// Build 根据配置构建 Redis 客户端并做一次连通性探测。
// 探测失败返回错误，由调用方决定是否降级启动。
func Build(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
