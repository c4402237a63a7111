package relay_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"MatchServer/internal/relay"
	"MatchServer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.ReplaceGlobal(zap.NewNop())
	m.Run()
}

// fakeChannel 测试用信道，记录收到的事件
type fakeChannel struct {
	mu     sync.Mutex
	events []relay.Event
	done   chan struct{}
	once   sync.Once
	full   bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{done: make(chan struct{})}
}

func (c *fakeChannel) Enqueue(evt relay.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	if c.full {
		return false
	}
	c.mu.Lock()
	c.events = append(c.events, evt)
	c.mu.Unlock()
	return true
}

func (c *fakeChannel) Close()                { c.once.Do(func() { close(c.done) }) }
func (c *fakeChannel) Done() <-chan struct{} { return c.done }

func (c *fakeChannel) received() []relay.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]relay.Event(nil), c.events...)
}

func TestRegistry_EmitFanOut(t *testing.T) {
	registry := relay.NewRegistry()

	ch1 := newFakeChannel()
	ch2 := newFakeChannel()
	require.True(t, registry.Subscribe("alice", ch1))
	require.True(t, registry.Subscribe("alice", ch2))
	assert.Equal(t, 2, registry.CountUser("alice"))

	sent := registry.Emit("alice", relay.Event{Type: relay.EventTyping, Data: relay.TypingPayload{FromUuid: "bob", Active: true}})
	assert.Equal(t, 2, sent)
	assert.Len(t, ch1.received(), 1)
	assert.Len(t, ch2.received(), 1)
}

func TestRegistry_EmitZeroChannelsIsNoop(t *testing.T) {
	registry := relay.NewRegistry()

	// 无在线信道不是错误
	sent := registry.Emit("nobody", relay.Event{Type: relay.EventMessage})
	assert.Equal(t, 0, sent)
}

func TestRegistry_UnsubscribeStopsDelivery(t *testing.T) {
	registry := relay.NewRegistry()

	ch := newFakeChannel()
	require.True(t, registry.Subscribe("alice", ch))
	registry.Unsubscribe("alice", ch)
	assert.Equal(t, 0, registry.CountUser("alice"))

	sent := registry.Emit("alice", relay.Event{Type: relay.EventMessage})
	assert.Equal(t, 0, sent)
	assert.Empty(t, ch.received())

	// 重复注销幂等
	registry.Unsubscribe("alice", ch)
}

func TestRegistry_FullQueueCountsAsDropped(t *testing.T) {
	registry := relay.NewRegistry()

	ok := newFakeChannel()
	stuck := newFakeChannel()
	stuck.full = true
	require.True(t, registry.Subscribe("alice", ok))
	require.True(t, registry.Subscribe("alice", stuck))

	sent := registry.Emit("alice", relay.Event{Type: relay.EventMessage})
	assert.Equal(t, 1, sent)
}

func TestRegistry_ShutdownClosesAllAndRejectsNew(t *testing.T) {
	registry := relay.NewRegistry()

	ch := newFakeChannel()
	require.True(t, registry.Subscribe("alice", ch))

	registry.Shutdown()
	assert.Equal(t, 0, registry.Count())

	select {
	case <-ch.Done():
	default:
		t.Fatal("channel should be closed after shutdown")
	}

	assert.False(t, registry.Subscribe("bob", newFakeChannel()))
}

func TestSSEChannel_WireFormat(t *testing.T) {
	recorder := httptest.NewRecorder()
	ch, err := relay.NewSSEChannel(recorder)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan struct{})
	go func() {
		ch.Serve(ctx)
		close(served)
	}()

	require.True(t, ch.Enqueue(relay.Event{
		Type: relay.EventTyping,
		Data: relay.TypingPayload{FromUuid: "bob", Active: true},
	}))

	// 等事件被写循环消费
	require.Eventually(t, func() bool {
		return strings.Contains(recorder.Body.String(), "event: typing")
	}, time.Second, 10*time.Millisecond)

	ch.Close()
	<-served

	body := recorder.Body.String()
	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))
	// 建立时先下发 open 事件
	assert.True(t, strings.HasPrefix(body, "event: open\ndata: \"ok\"\n\n"))
	assert.Contains(t, body, "event: typing\ndata: {\"fromUuid\":\"bob\",\"active\":true}\n\n")
}

func TestSSEChannel_HeadersDeferredToServe(t *testing.T) {
	recorder := httptest.NewRecorder()
	ch, err := relay.NewSSEChannel(recorder)
	require.NoError(t, err)

	// 构造阶段不碰响应：注册被拒时调用方还能写 JSON 错误
	assert.Empty(t, recorder.Header().Get("Content-Type"))
	assert.Zero(t, recorder.Body.Len())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan struct{})
	go func() {
		ch.Serve(ctx)
		close(served)
	}()

	require.Eventually(t, func() bool {
		return recorder.Header().Get("Content-Type") == "text/event-stream"
	}, time.Second, 10*time.Millisecond)

	ch.Close()
	<-served
}

func TestSSEChannel_EnqueueAfterClose(t *testing.T) {
	recorder := httptest.NewRecorder()
	ch, err := relay.NewSSEChannel(recorder)
	require.NoError(t, err)

	ch.Close()
	assert.False(t, ch.Enqueue(relay.Event{Type: relay.EventMessage}))
}
