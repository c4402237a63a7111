package config

import "time"

// NotifierConfig 外部消息通知客户端配置。
// 通知通道（邮件/推送供应商）是外部协作方，这里只管 HTTP 出站调用。
type NotifierConfig struct {
	Endpoint       string        `json:"endpoint" yaml:"endpoint"`             // 通知服务地址
	Timeout        time.Duration `json:"timeout" yaml:"timeout"`               // 单次调用超时
	RatePerSecond  float64       `json:"ratePerSecond" yaml:"ratePerSecond"`   // 出站限速（令牌/秒）
	RateBurst      int           `json:"rateBurst" yaml:"rateBurst"`           // 出站限速突发容量
	BreakerName    string        `json:"breakerName" yaml:"breakerName"`       // 熔断器名称
	BreakerTimeout time.Duration `json:"breakerTimeout" yaml:"breakerTimeout"` // 熔断打开后的恢复探测间隔
	MaxFailures    uint32        `json:"maxFailures" yaml:"maxFailures"`       // 连续失败多少次后熔断
}

// DefaultNotifierConfig 返回本地开发的默认配置。
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		Endpoint:       "http://notifier:8090/notify",
		Timeout:        3 * time.Second,
		RatePerSecond:  20,
		RateBurst:      40,
		BreakerName:    "notifier",
		BreakerTimeout: 30 * time.Second,
		MaxFailures:    5,
	}
}
