package tasks

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// visitorCleanupSpec 限流器空闲 IP 的清理周期
const visitorCleanupSpec = "@every 5m"

// VisitorCleaner 可清理空闲访问者的限流器
type VisitorCleaner interface {
	Cleanup() int
}

// VisitorCleanupTask 定期清理限流器中长时间未访问的 IP，避免内存无限增长
type VisitorCleanupTask struct {
	cleaner VisitorCleaner
	cron    *cron.Cron
	logger  *core.ZapLogger
}

// NewVisitorCleanupTask 创建并启动清理任务
func NewVisitorCleanupTask(cleaner VisitorCleaner, logger *core.ZapLogger) (*VisitorCleanupTask, error) {
	task := &VisitorCleanupTask{cleaner: cleaner, cron: cron.New(), logger: logger}
	if _, err := task.cron.AddFunc(visitorCleanupSpec, task.run); err != nil {
		return nil, fmt.Errorf("添加限流清理作业失败: %w", err)
	}
	task.cron.Start()
	return task, nil
}

func (t *VisitorCleanupTask) run() {
	if removed := t.cleaner.Cleanup(); removed > 0 {
		t.logger.Debug("已清理空闲限流记录", zap.Int("removed", removed))
	}
}

// Stop 停止调度
func (t *VisitorCleanupTask) Stop() context.Context {
	return t.cron.Stop()
}
