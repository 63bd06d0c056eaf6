package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sharedCore "github.com/Xushengqwer/go-common/core"
	sharedTracing "github.com/Xushengqwer/go-common/core/tracing"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/comment_service/config"
	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/controller"
	"github.com/Xushengqwer/comment_service/dependencies"
	_ "github.com/Xushengqwer/comment_service/docs"
	"github.com/Xushengqwer/comment_service/middleware"
	"github.com/Xushengqwer/comment_service/mq/consumer"
	"github.com/Xushengqwer/comment_service/mq/producer"
	"github.com/Xushengqwer/comment_service/realtime"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	redisrepo "github.com/Xushengqwer/comment_service/repo/redis"
	"github.com/Xushengqwer/comment_service/router"
	"github.com/Xushengqwer/comment_service/service"
	"github.com/Xushengqwer/comment_service/tasks"
)

// @title           Comment Service API
// @version         1.0
// @description     评论服务，提供评论提交、审核、评论树与回复数维护等功能。

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8085
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 加载配置。.env 可选，其中的变量会覆盖 YAML 里的密钥类配置
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: 加载 .env 失败: %v", err)
	}
	var cfg appConfig.CommentConfig
	if err := sharedCore.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}
	cfg.ApplyEnvOverrides()

	if configBytes, err := json.MarshalIndent(cfg, "", "  "); err == nil {
		log.Printf("配置加载成功:\n%s\n", string(configBytes))
	}

	// 2. 初始化 Logger
	logger, loggerErr := sharedCore.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()

	// 3. 分布式追踪
	if cfg.TracerConfig.Enabled {
		tracerShutdown, err := sharedTracing.InitTracerProvider(constant.ServiceName, constant.ServiceVersion, cfg.TracerConfig)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			}
		}()
		logger.Info("分布式追踪已初始化")
	} else {
		logger.Info("分布式追踪已禁用")
	}

	// --- 4. 核心依赖 ---
	db, dbErr := dependencies.InitDatabase(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化数据库失败", zap.Error(dbErr))
	}

	rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if redisErr != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(redisErr))
	}
	defer rdb.Close()

	// 对象存储只用于管理员上传配图，未配置时上传接口返回 503，其余功能不受影响
	storage, cosErr := dependencies.InitCOS(&cfg.COSConfig, logger)
	if cosErr != nil {
		logger.Warn("COS 未就绪，评论配图上传不可用", zap.Error(cosErr))
		storage = nil
	}

	var kafkaProducer *producer.KafkaProducer
	var events service.CommentEventPublisher
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer = producer.NewKafkaProducer(cfg.KafkaConfig, logger)
		events = kafkaProducer
		logger.Info("Kafka 生产者已初始化")
	} else {
		logger.Warn("未配置 Kafka brokers，评论事件不会发布")
	}

	// --- 5. 仓库层 ---
	commentRepo := mysql.NewCommentRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	settingRepo := mysql.NewSiteSettingRepository(db, logger)
	settingCache := redisrepo.NewSettingCache(rdb, logger)
	treeCache := redisrepo.NewCommentTreeCache(rdb, logger)

	// --- 6. 服务层 ---
	hubCtx, hubCancel := context.WithCancel(context.Background())
	hub := realtime.NewHub(cfg.CORSConfig.AllowOrigins, logger)
	go hub.Run(hubCtx)

	renderer := service.NewMarkdownRenderer()
	replyCounter := service.NewReplyCounter(commentRepo, logger)
	settingService, err := service.NewSettingService(
		settingRepo,
		settingCache,
		cfg.CacheConfig.LocalSize,
		time.Duration(cfg.CacheConfig.SettingTTLSeconds)*time.Second,
		logger,
	)
	if err != nil {
		logger.Fatal("初始化站点设置服务失败", zap.Error(err))
	}
	commentService := service.NewCommentService(db, commentRepo, postRepo, settingService, replyCounter, treeCache, events, hub, renderer, logger)
	gate := service.NewModerationGate(
		settingService,
		commentService,
		commentRepo,
		treeCache,
		renderer,
		time.Duration(cfg.CacheConfig.TreeCacheTTLSecond)*time.Second,
		logger,
	)
	adminService := service.NewAdminService(commentRepo, renderer, logger)
	uploadService := service.NewUploadService(storage, logger)

	// --- 7. 控制器 ---
	limiter := middleware.NewIPRateLimiter(cfg.RateLimitConfig)
	ctrls := router.Controllers{
		Comment:      controller.NewCommentController(commentService, gate, hub, middleware.RateLimitMiddleware(limiter), logger),
		CommentAdmin: controller.NewCommentAdminController(commentService, gate, replyCounter, adminService, logger),
		SettingAdmin: controller.NewSettingAdminController(settingService, logger),
		UploadAdmin:  controller.NewUploadAdminController(uploadService, logger),
	}

	// --- 8. Kafka 消费者：根据评论事件刷新回复数 ---
	var consumers []*consumer.Consumer
	var consumerWg sync.WaitGroup
	consumerCtx, consumerCancel := context.WithCancel(context.Background())

	if len(cfg.KafkaConfig.Brokers) > 0 {
		groupID := cfg.KafkaConfig.ConsumerGroupID
		if groupID == "" {
			groupID = "comment_service_group"
		}
		handlers := map[string]consumer.MessageHandler{
			cfg.KafkaConfig.Topics.CommentCreated: consumer.NewCommentCreatedHandler(logger, replyCounter),
			cfg.KafkaConfig.Topics.CommentDeleted: consumer.NewCommentDeletedHandler(logger, replyCounter),
		}
		for topic, handler := range handlers {
			if topic == "" {
				continue
			}
			c, err := consumer.NewConsumer(&cfg.KafkaConfig, groupID, topic, handler, logger)
			if err != nil {
				logger.Fatal("初始化 Kafka 消费者失败", zap.Error(err), zap.String("topic", topic))
			}
			consumers = append(consumers, c)
		}
		logger.Info(fmt.Sprintf("准备启动 %d 个 Kafka 消费者", len(consumers)))
		for _, c := range consumers {
			consumerWg.Add(1)
			go func(cons *consumer.Consumer) {
				defer consumerWg.Done()
				cons.Start(consumerCtx)
			}(c)
		}
	}

	// --- 9. 定时任务 ---
	var repairTask *tasks.ReplyCountRepairTask
	if !cfg.ReplyCountConfig.Disabled {
		repairTask, err = tasks.NewReplyCountRepairTask(replyCounter, cfg.ReplyCountConfig, logger)
		if err != nil {
			logger.Fatal("初始化回复数修复任务失败", zap.Error(err))
		}
	} else {
		logger.Warn("回复数修复定时任务已禁用")
	}
	cleanupTask, err := tasks.NewVisitorCleanupTask(limiter, logger)
	if err != nil {
		logger.Fatal("初始化限流清理任务失败", zap.Error(err))
	}

	// --- 10. HTTP 服务器 ---
	ginRouter := router.SetupRouter(logger, &cfg, ctrls)
	serverAddr := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}
	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
	}()

	// --- 11. 优雅关停 ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	logger.Info("收到关停信号，开始优雅退出...", zap.String("signal", receivedSignal.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// a. 先断开实时连接，否则 Shutdown 会一直等待被劫持的 websocket
	hubCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭 HTTP 服务器失败", zap.Error(err))
	}

	// b. Kafka 消费者
	consumerCancel()
	consumerWg.Wait()
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			logger.Error("关闭 Kafka 消费者时出错", zap.Error(err))
		}
	}

	// c. 定时任务，等待正在执行的修复结束
	stopCtxs := []context.Context{cleanupTask.Stop()}
	if repairTask != nil {
		stopCtxs = append(stopCtxs, repairTask.Stop())
	}
	for _, stopCtx := range stopCtxs {
		select {
		case <-stopCtx.Done():
		case <-shutdownCtx.Done():
			logger.Error("等待定时任务停止超时", zap.Error(shutdownCtx.Err()))
		}
	}

	// d. 生产者最后关闭，确保关停过程中的事件仍能发出
	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			logger.Error("关闭 Kafka 生产者失败", zap.Error(err))
		}
	}
	logger.Info("服务已成功关闭")
}
