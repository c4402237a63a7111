package config

import "time"

// ServerConfig HTTP 服务配置。
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr"`                       // 监听地址
	RequestTimeout  time.Duration `json:"requestTimeout" yaml:"requestTimeout"`   // 普通请求超时（不作用于长连接）
	StoreTimeout    time.Duration `json:"storeTimeout" yaml:"storeTimeout"`       // 持久化调用超时
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"` // 优雅退出等待时间
	MaxBodyBytes    int64         `json:"maxBodyBytes" yaml:"maxBodyBytes"`       // 请求体大小上限
}

// DefaultServerConfig 返回本地开发的默认配置。
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		RequestTimeout:  10 * time.Second,
		StoreTimeout:    3 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxBodyBytes:    1 << 20, // 1MB
	}
}
