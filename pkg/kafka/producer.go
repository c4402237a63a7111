package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Producer 封装 kafka-go Writer。
// 只承载埋点类消息：写失败记录日志即可，不重试、不阻塞业务。
type Producer struct {
	writer *kafkago.Writer
}

// NewProducer 创建生产者。
// Balancer 用 Hash，同一用户的事件落同一分区，便于下游按用户聚合。
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		WriteTimeout: 3 * time.Second,
		RequiredAcks: kafkago.RequireOne,
		Async:        false,
	}
	return &Producer{writer: writer}
}

// Send 发送一条消息。
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   key,
		Value: value,
	})
}

// Close 关闭底层连接。
func (p *Producer) Close() error {
	return p.writer.Close()
}
