package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/comment_service/config"
	"github.com/Xushengqwer/comment_service/dependencies"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	redisRepo "github.com/Xushengqwer/comment_service/repo/redis"
	"github.com/Xushengqwer/comment_service/service"
)

func main() {
	var (
		configFile     string
		numPosts       int
		commentsPerTop int
	)
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "配置文件路径")
	flag.IntVar(&numPosts, "n", 20, "要生成的帖子数量")
	flag.IntVar(&commentsPerTop, "c", 8, "每篇帖子的顶层评论数量")
	flag.Parse()

	if numPosts <= 0 || commentsPerTop < 0 {
		fmt.Println("错误: 帖子数量必须大于 0，评论数量不能为负")
		os.Exit(1)
	}
	absConfigFile, err := filepath.Abs(configFile)
	if err != nil {
		absConfigFile = configFile
	}

	var cfg appConfig.CommentConfig
	if err := core.LoadConfig(absConfigFile, &cfg); err != nil {
		fmt.Printf("加载配置失败 (%s): %v\n", absConfigFile, err)
		os.Exit(1)
	}
	cfg.ApplyEnvOverrides()

	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		fmt.Printf("初始化 ZapLogger 失败: %v\n", loggerErr)
		os.Exit(1)
	}
	defer func() { _ = logger.Logger().Sync() }()

	db, dbErr := dependencies.InitDatabase(&cfg, logger)
	if dbErr != nil {
		logger.Fatal("初始化数据库失败 (Seeder)", zap.Error(dbErr))
	}
	// 评论写入后需要清除评论树缓存，因此 Redis 是必需的
	rdb, redisErr := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if redisErr != nil {
		logger.Fatal("初始化 Redis 失败 (Seeder)", zap.Error(redisErr))
	}
	defer rdb.Close()

	commentRepo := mysql.NewCommentRepository(db, logger)
	postRepo := mysql.NewPostRepository(db, logger)
	treeCache := redisRepo.NewCommentTreeCache(rdb, logger)
	replyCounter := service.NewReplyCounter(commentRepo, logger)
	settingService, err := service.NewSettingService(
		mysql.NewSiteSettingRepository(db, logger),
		redisRepo.NewSettingCache(rdb, logger),
		cfg.CacheConfig.LocalSize,
		time.Duration(cfg.CacheConfig.SettingTTLSeconds)*time.Second,
		logger,
	)
	if err != nil {
		logger.Fatal("初始化站点设置服务失败 (Seeder)", zap.Error(err))
	}

	// 种子数据不发布事件也不推送实时消息，回复数在最后统一刷新
	commentSvc := service.NewCommentService(db, commentRepo, postRepo, settingService, replyCounter, treeCache, nil, nil, service.NewMarkdownRenderer(), logger)

	ctx := context.Background()
	// 站点关闭评论时公开提交全部会失败，先打开开关
	if enabled, sErr := settingService.CommentsEnabled(ctx); sErr != nil || !enabled {
		if sErr := settingService.SetCommentsEnabled(ctx, true); sErr != nil {
			logger.Fatal("打开站点评论开关失败 (Seeder)", zap.Error(sErr))
		}
		logger.Warn("站点评论开关已被 Seeder 打开")
	}
	startTime := time.Now()
	Seed(ctx, postRepo, commentSvc, logger, numPosts, commentsPerTop)

	result, err := replyCounter.RefreshAll(ctx)
	if err != nil {
		logger.Fatal("刷新回复数失败 (Seeder)", zap.Error(err))
	}
	logger.Info("回复数已刷新",
		zap.Int("total", result.TotalComments),
		zap.Int("updated", result.UpdatedCount),
		zap.Int("failed", len(result.Errors)))

	fmt.Printf("数据填充完成！总耗时: %v\n", time.Since(startTime))
}
