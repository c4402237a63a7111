package relay

import (
	"MatchServer/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	sseQueueSize         = 64
	sseKeepAliveInterval = 25 * time.Second
)

// ErrStreamingUnsupported 底层 ResponseWriter 不支持 flush（通常是代理/测试环境问题）
var ErrStreamingUnsupported = errors.New("streaming unsupported by response writer")

// SSEChannel Server-Sent Events 下行信道
// 写协议：event: {type}\ndata: {json}\n\n，注释行 ": keep-alive" 做心跳
// 设计与 WebSocket 信道一致：queue 削峰、done 统一关闭信号、once 幂等关闭
type SSEChannel struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	queue   chan Event
	done    chan struct{}
	once    sync.Once
}

// NewSSEChannel 包装一个 SSE 信道。
// 响应头延迟到 Serve 才写：注册失败时调用方还能写普通 JSON 错误响应
func NewSSEChannel(w http.ResponseWriter) (*SSEChannel, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	return &SSEChannel{
		writer:  w,
		flusher: flusher,
		queue:   make(chan Event, sseQueueSize),
		done:    make(chan struct{}),
	}, nil
}

// Enqueue 将事件投入写队列
func (c *SSEChannel) Enqueue(evt Event) bool {
	select {
	case <-c.done:
		return false
	case c.queue <- evt:
		return true
	default:
		return false
	}
}

// Close 幂等关闭信道
func (c *SSEChannel) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// Done 关闭信号
func (c *SSEChannel) Done() <-chan struct{} {
	return c.done
}

// Serve 运行写循环，阻塞到客户端断开或信道被关闭。
// 先写流式响应头并立即下发一次 open 事件，此后周期性写心跳注释行，
// 任何一次网络写失败都视为连接死亡并退出
func (c *SSEChannel) Serve(ctx context.Context) {
	defer c.Close()

	header := c.writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.writer.WriteHeader(http.StatusOK)

	if err := c.writeEvent(Event{Type: EventOpen, Data: "ok"}); err != nil {
		return
	}

	keepAlive := time.NewTicker(sseKeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case evt := <-c.queue:
			if err := c.writeEvent(evt); err != nil {
				logger.Debug(ctx, "SSE 写事件失败，关闭信道",
					logger.String("event", evt.Type),
					logger.ErrorField("error", err),
				)
				return
			}
		case <-keepAlive.C:
			if err := c.writeKeepAlive(); err != nil {
				return
			}
		}
	}
}

func (c *SSEChannel) writeEvent(evt Event) error {
	data, err := evt.EncodeData()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.writer, "event: %s\ndata: %s\n\n", evt.Type, data); err != nil {
		return err
	}
	c.flusher.Flush()
	return nil
}

func (c *SSEChannel) writeKeepAlive() error {
	if _, err := fmt.Fprint(c.writer, ": keep-alive\n\n"); err != nil {
		return err
	}
	c.flusher.Flush()
	return nil
}
