package notifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"MatchServer/config"
	"MatchServer/internal/notifier"
	"MatchServer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.ReplaceGlobal(zap.NewNop())
	m.Run()
}

func testConfig(endpoint string) config.NotifierConfig {
	cfg := config.DefaultNotifierConfig()
	cfg.Endpoint = endpoint
	cfg.Timeout = time.Second
	cfg.RatePerSecond = 1000
	cfg.RateBurst = 1000
	cfg.MaxFailures = 3
	return cfg
}

func TestNotifier_PostsPayload(t *testing.T) {
	var got struct {
		Handle string `json:"handle"`
		Text   string `json:"text"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := notifier.New(testConfig(server.URL))
	err := n.Notify(context.Background(), "mailto:alice@example.com", "It's a match!")
	assert.NoError(t, err)
	assert.Equal(t, "mailto:alice@example.com", got.Handle)
	assert.Equal(t, "It's a match!", got.Text)
}

func TestNotifier_EmptyHandleIsNoop(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	n := notifier.New(testConfig(server.URL))
	assert.NoError(t, n.Notify(context.Background(), "", "hello"))
	assert.Equal(t, int64(0), calls.Load())
}

func TestNotifier_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	n := notifier.New(testConfig(server.URL))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.Error(t, n.Notify(ctx, "handle", "text"))
	}
	// 熔断打开后不再打到下游
	assert.Error(t, n.Notify(ctx, "handle", "text"))
	assert.Equal(t, int64(3), calls.Load())
}
