package notifier

import (
	"MatchServer/config"
	"MatchServer/pkg/logger"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// INotifier 出站通知客户端接口
// 通知是尽力而为：失败只记日志，绝不反向影响业务链路
type INotifier interface {
	// Notify 向用户的外部通知通道推送一条文本
	Notify(ctx context.Context, externalHandle, text string) error
}

// noopNotifier 空实现，未配置通知服务时使用
type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string) error { return nil }

// NewNoop 创建空通知客户端
func NewNoop() INotifier { return noopNotifier{} }

// httpNotifier 基于 HTTP 的通知客户端
// 出站侧两层保护：
//   - 令牌桶限速，避免配对高峰打挂下游供应商
//   - 熔断器，下游持续失败时快速失败而不是排队堆积
type httpNotifier struct {
	cfg     config.NotifierConfig
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// New 创建 HTTP 通知客户端
func New(cfg config.NotifierConfig) INotifier {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    cfg.BreakerName,
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "通知熔断器状态变化",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})

	return &httpNotifier{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		breaker: breaker,
	}
}

type notifyRequest struct {
	Handle string `json:"handle"`
	Text   string `json:"text"`
}

// Notify 向用户的外部通知通道推送一条文本
func (n *httpNotifier) Notify(ctx context.Context, externalHandle, text string) error {
	if externalHandle == "" {
		return nil
	}

	// 限速不等待：通知可丢，别让业务协程排队
	if !n.limiter.Allow() {
		logger.Warn(ctx, "通知出站限速触发，丢弃本条",
			logger.String("handle", externalHandle),
		)
		return nil
	}

	_, err := n.breaker.Execute(func() (any, error) {
		return nil, n.post(ctx, externalHandle, text)
	})
	if err != nil {
		logger.Warn(ctx, "通知推送失败",
			logger.String("handle", externalHandle),
			logger.ErrorField("error", err),
		)
		return err
	}
	return nil
}

func (n *httpNotifier) post(ctx context.Context, handle, text string) error {
	body, err := json.Marshal(notifyRequest{Handle: handle, Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notifier returned status %d", resp.StatusCode)
	}
	return nil
}
