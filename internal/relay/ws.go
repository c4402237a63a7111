package relay

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsQueueSize     = 64
	wsWriteTimeout  = 5 * time.Second
	wsPingInterval  = 25 * time.Second
	wsPongWait      = 60 * time.Second
	wsMaxFrameBytes = 4096
)

// WSChannel WebSocket 下行信道
// 与 SSE 信道同构：send 队列削峰、done 统一关闭信号、once 幂等关闭。
// 上行帧不承载业务（输入中/已读都走 REST），readLoop 只负责感知断连
type WSChannel struct {
	conn *websocket.Conn
	send chan Event
	done chan struct{}
	once sync.Once
}

// NewWSChannel 包装一条 WebSocket 连接
func NewWSChannel(conn *websocket.Conn) *WSChannel {
	return &WSChannel{
		conn: conn,
		send: make(chan Event, wsQueueSize),
		done: make(chan struct{}),
	}
}

// Enqueue 将事件投入写队列
func (c *WSChannel) Enqueue(evt Event) bool {
	select {
	case <-c.done:
		return false
	case c.send <- evt:
		return true
	default:
		return false
	}
}

// Close 幂等关闭信道
// 关闭顺序：先关 done 通知读写循环退出，再关底层连接释放网络资源
func (c *WSChannel) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Done 关闭信号
func (c *WSChannel) Done() <-chan struct{} {
	return c.done
}

// Run 启动读写循环并阻塞等待退出
// writeLoop 在独立 goroutine 运行；readLoop 占用当前 goroutine，
// 由断连错误触发整体退出，退出时保证信道已关闭
func (c *WSChannel) Run(ctx context.Context) {
	defer c.Close()

	if err := c.writeEvent(Event{Type: EventOpen, Data: "ok"}); err != nil {
		return
	}

	go c.writeLoop(ctx)
	c.readLoop(ctx)
}

// readLoop 持续读上行帧直到断连
// pong 回调刷新读超时，配合 writeLoop 的周期 ping 回收死连接
func (c *WSChannel) readLoop(ctx context.Context) {
	c.conn.SetReadLimit(wsMaxFrameBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop 持续从 send 队列取事件写入客户端
func (c *WSChannel) writeLoop(ctx context.Context) {
	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case evt := <-c.send:
			if err := c.writeEvent(evt); err != nil {
				c.Close()
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

func (c *WSChannel) writeEvent(evt Event) error {
	payload, err := evt.Encode()
	if err != nil {
		return err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
