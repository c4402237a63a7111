package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"MatchServer/config"
	"MatchServer/internal/analytics"
	"MatchServer/internal/guard"
	"MatchServer/internal/notifier"
	"MatchServer/internal/ratelimit"
	"MatchServer/internal/relay"
	"MatchServer/internal/repository"
	"MatchServer/internal/router"
	v1 "MatchServer/internal/router/v1"
	"MatchServer/internal/service"
	"MatchServer/model"
	"MatchServer/pkg/async"
	"MatchServer/pkg/kafka"
	"MatchServer/pkg/logger"
	pkgminio "MatchServer/pkg/minio"
	"MatchServer/pkg/mysql"
	pkgredis "MatchServer/pkg/redis"
	"MatchServer/pkg/util"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()
	//设置trace_id 为 0
	ctx = context.WithValue(ctx, "trace_id", "0")

	// 1. 初始化日志
	loggerCfg := config.DefaultLoggerConfig()
	l, err := logger.Build(loggerCfg)
	if err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	logger.ReplaceGlobal(l)
	defer func() {
		// Sync 对 os.Stdout 会返回错误，可以忽略
		_ = logger.L().Sync()
	}()

	logger.Info(ctx, "MatchServer 服务初始化中...")

	// 2. 初始化雪花节点与协程池
	if err := util.InitSnowflake(1); err != nil {
		logger.Fatal(ctx, "初始化雪花节点失败", logger.ErrorField("error", err))
	}
	if err := async.Init(config.DefaultAsyncConfig()); err != nil {
		logger.Fatal(ctx, "初始化协程池失败", logger.ErrorField("error", err))
	}
	defer async.Release()
	// 异步任务脱离请求生命周期，但日志要带上请求的 trace_id
	async.SetContextPropagator(util.DetachTraceContext)

	// 3. 初始化 MySQL
	db, err := mysql.Build(config.DefaultMySQLConfig())
	if err != nil {
		logger.Fatal(ctx, "初始化 MySQL 失败", logger.ErrorField("error", err))
	}
	mysql.ReplaceGlobal(db)
	if err := model.AutoMigrate(db); err != nil {
		logger.Fatal(ctx, "建表失败", logger.ErrorField("error", err))
	}
	logger.Info(ctx, "MySQL 初始化成功")

	// 4. 初始化 Redis
	// Redis 初始化失败不阻塞启动：缓存与限流降级，数据事实在 MySQL
	redisCfg := config.DefaultRedisConfig()
	redisClient, err := pkgredis.Build(redisCfg)
	if err != nil {
		logger.Error(ctx, "初始化 Redis 失败，缓存与限流降级",
			logger.ErrorField("error", err),
		)
		redisClient = nil
	} else {
		pkgredis.ReplaceGlobal(redisClient)
		logger.Info(ctx, "Redis 初始化成功",
			logger.String("addr", redisCfg.Addr),
		)
	}

	// 5. 初始化 Kafka 埋点生产者（可选依赖）
	kafkaCfg := config.DefaultKafkaConfig()
	var producer *kafka.Producer
	if len(kafkaCfg.Brokers) > 0 {
		producer = kafka.NewProducer(kafkaCfg.Brokers, kafkaCfg.DiscoveryTopic)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error(ctx, "关闭 Kafka 生产者失败", logger.ErrorField("error", err))
			}
		}()
		logger.Info(ctx, "Kafka 生产者初始化完成",
			logger.String("topic", kafkaCfg.DiscoveryTopic),
		)
	}

	// 6. 初始化 MinIO（可选依赖，媒体直传）
	var storage *pkgminio.MinIOClient
	if s, err := pkgminio.Build(config.DefaultMinIOConfig()); err != nil {
		logger.Error(ctx, "初始化 MinIO 失败，媒体上传不可用",
			logger.ErrorField("error", err),
		)
	} else {
		storage = s
		pkgminio.ReplaceGlobal(s)
		logger.Info(ctx, "MinIO 初始化成功")
	}

	// 7. 初始化 Repository 层（依赖注入）
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	likeRepo := repository.NewLikeRepository(db, redisClient)
	blockRepo := repository.NewBlockRepository(db)
	matchRepo := repository.NewMatchRepository(db, redisClient)
	messageRepo := repository.NewMessageRepository(db)
	reportRepo := repository.NewReportRepository(db)
	logger.Info(ctx, "仓储层初始化完成")

	// 8. 初始化限流器：Redis 可用时用集中式滑动窗口，否则退化为进程内
	rateLimitCfg := config.DefaultRateLimitConfig()
	var limiter ratelimit.Limiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(rateLimitCfg, redisClient)
		logger.Info(ctx, "Redis 限流器初始化完成")
	} else {
		limiter = ratelimit.NewMemoryLimiter(rateLimitCfg)
		logger.Info(ctx, "内存限流器初始化完成（Redis 不可用）")
	}

	// 9. 初始化实时信道注册表与外围组件
	registry := relay.NewRegistry()
	interactionGuard := guard.New(blockRepo, profileRepo)
	matchNotifier := notifier.New(config.DefaultNotifierConfig())
	analyticsLogger := analytics.NewLogger(producer)

	// 10. 初始化 Service 层（依赖注入）
	discoverService := service.NewDiscoverService(
		config.DefaultSelectorConfig(), profileRepo, userRepo, likeRepo, blockRepo, analyticsLogger)
	likeService := service.NewLikeService(
		interactionGuard, userRepo, likeRepo, matchRepo, messageRepo, matchNotifier, analyticsLogger)
	chatService := service.NewChatService(interactionGuard, matchRepo, messageRepo, registry)
	blockService := service.NewBlockService(userRepo, blockRepo, interactionGuard)
	reportService := service.NewReportService(userRepo, reportRepo)
	privacyService := service.NewPrivacyService(profileRepo)
	logger.Info(ctx, "服务层初始化完成")

	// 11. 初始化 Handler 与路由（依赖注入）
	gin.SetMode(gin.ReleaseMode)
	handlers := &router.Handlers{
		Discover:   v1.NewDiscoverHandler(discoverService),
		Like:       v1.NewLikeHandler(likeService),
		Chat:       v1.NewChatHandler(chatService),
		Realtime:   v1.NewRealtimeHandler(registry),
		Moderation: v1.NewModerationHandler(blockService, reportService),
		Privacy:    v1.NewPrivacyHandler(privacyService),
		Media:      v1.NewMediaHandler(storage),
	}
	r := router.InitRouter(handlers, limiter)
	logger.Info(ctx, "路由初始化完成")

	// 12. 配置并启动服务器
	serverCfg := config.DefaultServerConfig()
	srv := &http.Server{
		Addr:           serverCfg.Addr,
		Handler:        r,
		ReadTimeout:    serverCfg.RequestTimeout,
		MaxHeaderBytes: 1 << 20,
		// 注意：不能设置 WriteTimeout，SSE 长连接会被它掐断
	}

	go func() {
		logger.Info(ctx, "服务器启动中", logger.String("addr", serverCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "服务器启动失败", logger.ErrorField("error", err))
			os.Exit(1)
		}
	}()

	logger.Info(ctx, "服务器启动成功，按 Ctrl+C 关闭")

	// 13. 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info(ctx, "收到关闭信号，开始优雅停机...",
		logger.String("signal", sig.String()),
	)

	// 先关实时信道：让在线客户端的 SSE/WS 连接收尾，HTTP 请求随后收口
	registry.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "服务器强制关闭", logger.ErrorField("error", err))
	}

	logger.Info(ctx, "服务已退出")
}
