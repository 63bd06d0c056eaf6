package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/config"
	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/service"
)

// ReplyCountRepairTask 定时全量重算顶层评论的回复数，
// 兜底 Kafka 事件丢失或处理失败造成的偏差。
type ReplyCountRepairTask struct {
	replyCounter service.ReplyCounter
	cron         *cron.Cron
	schedule     string
	timeout      time.Duration
	logger       *core.ZapLogger
}

// NewReplyCountRepairTask 创建并启动修复任务
func NewReplyCountRepairTask(replyCounter service.ReplyCounter, cfg config.ReplyCountConfig, logger *core.ZapLogger) (*ReplyCountRepairTask, error) {
	schedule := cfg.CronSpec
	if schedule == "" {
		schedule = constant.DefaultReplyCountCronSpec
	}
	timeout := time.Duration(cfg.RunTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = constant.DefaultReplyCountTimeout
	}

	task := &ReplyCountRepairTask{
		replyCounter: replyCounter,
		cron:         cron.New(),
		schedule:     schedule,
		timeout:      timeout,
		logger:       logger,
	}
	if err := task.startCronJob(); err != nil {
		return nil, err
	}
	return task, nil
}

func (t *ReplyCountRepairTask) startCronJob() error {
	// 同一时刻只允许一次全量刷新，上一次未结束时跳过
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		t.RunOnce(ctx)
	}))

	entryID, err := t.cron.AddJob(t.schedule, job)
	if err != nil {
		t.logger.Error("添加回复数修复 cron 作业失败", zap.Error(err), zap.String("schedule", t.schedule))
		return fmt.Errorf("添加回复数修复作业(%s)失败: %w", t.schedule, err)
	}
	t.cron.Start()
	t.logger.Info("回复数修复定时任务已启动", zap.String("schedule", t.schedule), zap.Int("cronEntryID", int(entryID)))
	return nil
}

// RunOnce 执行一次全量刷新
func (t *ReplyCountRepairTask) RunOnce(ctx context.Context) {
	start := time.Now()
	result, err := t.replyCounter.RefreshAll(ctx)
	if err != nil {
		t.logger.Error("回复数修复任务失败", zap.Error(err))
		return
	}
	t.logger.Info("回复数修复任务执行完毕",
		zap.Int("total", result.TotalComments),
		zap.Int("updated", result.UpdatedCount),
		zap.Int("failed", len(result.Errors)),
		zap.Duration("duration", time.Since(start)))
}

// Stop 停止调度，返回的 context 在正在执行的任务结束后完成
func (t *ReplyCountRepairTask) Stop() context.Context {
	t.logger.Info("正在停止回复数修复定时任务...")
	return t.cron.Stop()
}
