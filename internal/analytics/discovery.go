package analytics

import (
	"MatchServer/pkg/async"
	"MatchServer/pkg/kafka"
	"MatchServer/pkg/logger"
	"context"
	"encoding/json"
	"time"
)

// 埋点动作类型
const (
	ActionDiscoverView = "discover:view"
	ActionLikeSent     = "like:sent"
	ActionMatchCreated = "match:created"
)

// DiscoveryAction 发现页行为埋点事件
// 纯分析链路，与业务正确性无关
type DiscoveryAction struct {
	UserUuid       string    `json:"userUuid"`
	Action         string    `json:"action"`
	TargetUuid     string    `json:"targetUuid,omitempty"`
	CandidateCount int       `json:"candidateCount,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// Logger 发现页埋点上报器
type Logger struct {
	producer *kafka.Producer
}

// NewLogger 创建埋点上报器
// producer 允许为 nil：Kafka 未部署时埋点整体静默关闭
func NewLogger(producer *kafka.Producer) *Logger {
	return &Logger{producer: producer}
}

// Record 异步上报一条埋点
// 发送在协程池内完成且失败只记日志，任何情况下不阻塞请求链路
func (l *Logger) Record(ctx context.Context, action DiscoveryAction) {
	if l == nil || l.producer == nil {
		return
	}
	if action.OccurredAt.IsZero() {
		action.OccurredAt = time.Now()
	}

	async.Go(ctx, func(taskCtx context.Context) {
		payload, err := json.Marshal(action)
		if err != nil {
			logger.Warn(taskCtx, "埋点序列化失败",
				logger.String("action", action.Action),
				logger.ErrorField("error", err),
			)
			return
		}

		sendCtx, cancel := context.WithTimeout(taskCtx, 3*time.Second)
		defer cancel()
		if err := l.producer.Send(sendCtx, []byte(action.UserUuid), payload); err != nil {
			logger.Warn(taskCtx, "埋点发送失败",
				logger.String("action", action.Action),
				logger.ErrorField("error", err),
			)
		}
	})
}
