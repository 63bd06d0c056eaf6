package service

import (
	"context"
	"fmt"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/repo/mysql"
)

// AdminService 管理后台的评论概览
type AdminService interface {
	// Stats 返回评论计数与最近 recent 条评论；recent <= 0 取默认值，超过上限截断。
	Stats(ctx context.Context, recent int) (*vo.CommentStatsVO, error)
}

type adminService struct {
	commentRepo mysql.CommentRepository
	renderer    ContentRenderer
	logger      *core.ZapLogger
}

// NewAdminService 创建管理概览服务
func NewAdminService(commentRepo mysql.CommentRepository, renderer ContentRenderer, logger *core.ZapLogger) AdminService {
	return &adminService{commentRepo: commentRepo, renderer: renderer, logger: logger}
}

func (s *adminService) Stats(ctx context.Context, recent int) (*vo.CommentStatsVO, error) {
	if recent <= 0 {
		recent = constant.DefaultStatsRecent
	}
	if recent > constant.MaxStatsRecent {
		recent = constant.MaxStatsRecent
	}

	counts, err := s.commentRepo.CountComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计评论失败: %w", err)
	}
	latest, err := s.commentRepo.ListRecent(ctx, recent)
	if err != nil {
		return nil, fmt.Errorf("查询最近评论失败: %w", err)
	}

	stats := &vo.CommentStatsVO{
		Total:    counts.Total,
		Approved: counts.Approved,
		Pending:  counts.Total - counts.Approved,
		TopLevel: counts.TopLevel,
		Replies:  counts.Total - counts.TopLevel,
		Recent:   toCommentVOs(latest, s.renderer, true),
	}
	s.logger.Debug("评论统计完成", zap.Int64("total", stats.Total), zap.Int64("pending", stats.Pending))
	return stats, nil
}
