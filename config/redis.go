package config

import "time"

// RedisConfig Redis 连接配置。
type RedisConfig struct {
	Addr         string        `json:"addr" yaml:"addr"`                 // 地址 host:port
	Password     string        `json:"password" yaml:"password"`         // 密码
	DB           int           `json:"db" yaml:"db"`                     // 数据库编号
	PoolSize     int           `json:"poolSize" yaml:"poolSize"`         // 连接池大小
	DialTimeout  time.Duration `json:"dialTimeout" yaml:"dialTimeout"`   // 连接超时
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`   // 读超时
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"` // 写超时
}

// DefaultRedisConfig 返回本地开发的默认配置。
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         "redis:6379",
		Password:     "",
		DB:           0,
		PoolSize:     64,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
}
