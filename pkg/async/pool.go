package async

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"MatchServer/config"
	"MatchServer/pkg/logger"

	"github.com/panjf2000/ants/v2"
)

var (
	global   *ants.Pool
	globalMu sync.Mutex
	cfgCopy  config.AsyncConfig
)

// ContextPropagator 由业务层注入，用于从父 ctx 提取需要透传的字段（trace_id 等）。
var ContextPropagator func(parent context.Context) context.Context

// SetContextPropagator 设置上下文传递器（建议在 main 初始化时调用）。
func SetContextPropagator(fn func(context.Context) context.Context) {
	ContextPropagator = fn
}

// ErrNotInitialized 表示协程池尚未初始化。
var ErrNotInitialized = errors.New("async pool not initialized")

// Pool 返回全局协程池（未初始化时为 nil）。
func Pool() *ants.Pool { return global }

// Build 根据配置创建协程池实例。
func Build(cfg config.AsyncConfig) (*ants.Pool, error) {
	opts := []ants.Option{
		ants.WithMaxBlockingTasks(cfg.MaxBlockingTasks),
		ants.WithExpiryDuration(cfg.ExpiryDuration),
		ants.WithPanicHandler(func(p any) {
			if logger.L() != nil {
				logger.Error(context.Background(), "async task panic",
					logger.Any("panic", p),
					logger.String("stack", string(debug.Stack())),
				)
			}
		}),
	}
	if cfg.Nonblocking {
		opts = append(opts, ants.WithNonblocking(true))
	}

	return ants.NewPool(cfg.PoolSize, opts...)
}

// Init 初始化全局协程池（仅需在进程启动时调用一次）。
func Init(cfg config.AsyncConfig) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return nil
	}

	p, err := Build(cfg)
	if err != nil {
		return err
	}

	global = p
	cfgCopy = cfg
	return nil
}

// Go 提交一个异步任务。
// ctx 会经过 ContextPropagator 派生（脱离请求生命周期，但保留 trace 字段）。
// 协程池未初始化时同步降级执行，保证任务不丢。
func Go(ctx context.Context, task func(ctx context.Context)) {
	taskCtx := context.Background()
	if ContextPropagator != nil && ctx != nil {
		taskCtx = ContextPropagator(ctx)
	}

	if global == nil {
		task(taskCtx)
		return
	}

	if err := global.Submit(func() { task(taskCtx) }); err != nil {
		logger.Warn(taskCtx, "异步任务提交失败，降级为同步执行",
			logger.ErrorField("error", err),
		)
		task(taskCtx)
	}
}

// Release 优雅释放全局协程池，等待不超过配置的超时时间。
func Release() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		return
	}

	timeout := cfgCopy.ReleaseTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if err := global.ReleaseTimeout(timeout); err != nil {
		logger.Warn(context.Background(), "协程池释放超时",
			logger.ErrorField("error", err),
		)
	}
	global = nil
}
