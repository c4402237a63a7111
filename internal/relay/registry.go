package relay

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var openChannelsGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "matchserver",
	Subsystem: "relay",
	Name:      "open_channels",
	Help:      "Number of currently open realtime push channels.",
})

// Channel 单条下行推送信道的抽象
// SSE 与 WebSocket 各自实现，Registry 只关心入队与关闭
type Channel interface {
	// Enqueue 将事件投入写队列
	// 返回 false 表示信道已关闭或队列已满（事件被丢弃，状态以存储为准）
	Enqueue(evt Event) bool

	// Close 幂等关闭信道
	Close()

	// Done 关闭信号，信道生命周期结束后可读
	Done() <-chan struct{}
}

// Registry 在线推送信道注册表。
// 维护 user_uuid -> 信道集合 的索引，一个用户可以同时持有多条信道
// （多端/多标签页）。纯进程内状态：多实例部署时各实例只覆盖
// 自己持有的连接，用户可能连在别的实例上收不到本实例的事件 ——
// 这是部署约束，事实真相始终在消息存储里，重连后拉历史即可恢复。
type Registry struct {
	mu       sync.RWMutex
	byUser   map[string]map[Channel]struct{}
	shutdown bool
}

// NewRegistry 创建信道注册表
func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]map[Channel]struct{}),
	}
}

// Subscribe 注册一条信道
// 返回 false 表示注册表已关闭（优雅退出阶段），调用方应直接关闭信道
func (r *Registry) Subscribe(userUUID string, ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shutdown {
		return false
	}

	channels, ok := r.byUser[userUUID]
	if !ok {
		channels = make(map[Channel]struct{})
		r.byUser[userUUID] = channels
	}
	if _, exists := channels[ch]; !exists {
		channels[ch] = struct{}{}
		openChannelsGauge.Inc()
	}
	return true
}

// Unsubscribe 注销一条信道
// 连接关闭时必须调用，否则信道引用会滞留到下一次写失败
func (r *Registry) Unsubscribe(userUUID string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	channels, ok := r.byUser[userUUID]
	if !ok {
		return
	}
	if _, exists := channels[ch]; !exists {
		return
	}
	delete(channels, ch)
	openChannelsGauge.Dec()
	if len(channels) == 0 {
		delete(r.byUser, userUUID)
	}
}

// Emit 向目标用户的全部在线信道广播事件
// 无在线信道时是 no-op 而不是错误（事件不做回放，离线靠拉历史补齐）。
// 返回成功入队的信道数，可用于统计下行投递率
func (r *Registry) Emit(userUUID string, evt Event) int {
	r.mu.RLock()
	channels, ok := r.byUser[userUUID]
	if !ok || len(channels) == 0 {
		r.mu.RUnlock()
		return 0
	}
	targets := make([]Channel, 0, len(channels))
	for ch := range channels {
		targets = append(targets, ch)
	}
	r.mu.RUnlock()

	sent := 0
	for _, ch := range targets {
		if ch.Enqueue(evt) {
			sent++
		}
	}
	return sent
}

// Count 当前在线信道总数
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, channels := range r.byUser {
		total += len(channels)
	}
	return total
}

// CountUser 某用户当前在线信道数
func (r *Registry) CountUser(userUUID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userUUID])
}

// Shutdown 关闭全部信道并阻止后续注册，用于进程优雅退出
func (r *Registry) Shutdown() {
	r.mu.Lock()
	if r.shutdown {
		r.mu.Unlock()
		return
	}
	r.shutdown = true

	targets := make([]Channel, 0)
	for _, channels := range r.byUser {
		for ch := range channels {
			targets = append(targets, ch)
		}
	}
	r.byUser = make(map[string]map[Channel]struct{})
	r.mu.Unlock()

	openChannelsGauge.Sub(float64(len(targets)))
	for _, ch := range targets {
		ch.Close()
	}
}
