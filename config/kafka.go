package config

// KafkaConfig Kafka 配置。
// 当前仅用于发现页行为埋点（分析链路），不承载业务正确性。
type KafkaConfig struct {
	Brokers        []string `json:"brokers" yaml:"brokers"`               // Broker 地址列表
	DiscoveryTopic string   `json:"discoveryTopic" yaml:"discoveryTopic"` // 发现页埋点 topic
}

// DefaultKafkaConfig 返回本地开发的默认配置。
func DefaultKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Brokers:        []string{"kafka:9092"},
		DiscoveryTopic: "social.discovery.actions",
	}
}
