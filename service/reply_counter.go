package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/mysql"
)

// ReplyCounter 维护顶层评论的冗余回复数 reply_count。
// - 回复数是展示用的计数，不随每次写入事务性更新，而是由修复操作重新统计：
//   定时任务、管理员手动触发、以及 Kafka 评论事件消费者。
// - 统计与写入之间没有隔离保证，并发写入时可能短暂偏差，下一次修复会纠正。
type ReplyCounter interface {
	// RefreshReplyCount 重新统计顶层评论的全部后代数量并写回，返回新的计数。
	// - 评论不存在返回 commonerrors.ErrRepoNotFound；不是顶层评论返回 ValidationError。
	RefreshReplyCount(ctx context.Context, topLevelID uint64) (int, error)

	// RefreshForComment 找到任意评论的顶层祖先并刷新其回复数。
	RefreshForComment(ctx context.Context, commentID uint64) error

	// RefreshAll 逐条刷新全部顶层评论，单条失败不会中止批次，失败项收集在结果中。
	RefreshAll(ctx context.Context) (*vo.RefreshReplyCountResult, error)
}

type replyCounter struct {
	commentRepo mysql.CommentRepository
	logger      *core.ZapLogger
}

// NewReplyCounter 创建回复数维护服务
func NewReplyCounter(commentRepo mysql.CommentRepository, logger *core.ZapLogger) ReplyCounter {
	return &replyCounter{commentRepo: commentRepo, logger: logger}
}

// collectDescendantIDs 按层广度遍历收集给定评论的全部后代 ID（不含根本身）。
// visited 防止脏数据中的环导致死循环。
func collectDescendantIDs(ctx context.Context, repo mysql.CommentRepository, rootIDs ...uint64) ([]uint64, error) {
	visited := make(map[uint64]struct{}, len(rootIDs))
	for _, id := range rootIDs {
		visited[id] = struct{}{}
	}
	descendants := make([]uint64, 0)
	frontier := append([]uint64(nil), rootIDs...)
	for len(frontier) > 0 {
		children, err := repo.ListChildIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}
		next := make([]uint64, 0, len(children))
		for _, id := range children {
			if _, ok := visited[id]; ok {
				continue
			}
			visited[id] = struct{}{}
			descendants = append(descendants, id)
			next = append(next, id)
		}
		frontier = next
	}
	return descendants, nil
}

func (s *replyCounter) RefreshReplyCount(ctx context.Context, topLevelID uint64) (int, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, topLevelID)
	if err != nil {
		return 0, fmt.Errorf("获取评论(ID: %d)失败: %w", topLevelID, err)
	}
	if !comment.IsTopLevel() {
		return 0, myErrors.NewValidationError("comment_id", "只能刷新顶层评论的回复数")
	}

	descendants, err := collectDescendantIDs(ctx, s.commentRepo, topLevelID)
	if err != nil {
		s.logger.Error("统计评论后代失败", zap.Error(err), zap.Uint64("commentID", topLevelID))
		return 0, fmt.Errorf("统计评论(ID: %d)回复数失败: %w", topLevelID, err)
	}
	count := len(descendants)

	if err := s.commentRepo.UpdateReplyCount(ctx, topLevelID, count); err != nil {
		return 0, fmt.Errorf("写入评论(ID: %d)回复数失败: %w", topLevelID, err)
	}
	s.logger.Debug("回复数已刷新", zap.Uint64("commentID", topLevelID), zap.Int("replyCount", count))
	return count, nil
}

func (s *replyCounter) RefreshForComment(ctx context.Context, commentID uint64) error {
	rootID, err := s.findRootID(ctx, commentID)
	if err != nil {
		return err
	}
	_, err = s.RefreshReplyCount(ctx, rootID)
	return err
}

// findRootID 逐级向上查父评论，直到顶层
func (s *replyCounter) findRootID(ctx context.Context, commentID uint64) (uint64, error) {
	seen := make(map[uint64]struct{})
	id := commentID
	for {
		if _, loop := seen[id]; loop {
			return 0, fmt.Errorf("评论(ID: %d)的祖先链存在环", commentID)
		}
		seen[id] = struct{}{}

		comment, err := s.commentRepo.GetCommentByID(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("查找评论(ID: %d)的顶层祖先失败: %w", commentID, err)
		}
		if comment.IsTopLevel() {
			return comment.ID, nil
		}
		id = *comment.ParentID
	}
}

func (s *replyCounter) RefreshAll(ctx context.Context) (*vo.RefreshReplyCountResult, error) {
	ids, err := s.commentRepo.ListTopLevelIDs(ctx)
	if err != nil {
		s.logger.Error("获取顶层评论列表失败，全量刷新中止", zap.Error(err))
		return nil, fmt.Errorf("获取顶层评论列表失败: %w", err)
	}

	result := &vo.RefreshReplyCountResult{
		TotalComments: len(ids),
		Errors:        make([]vo.RefreshReplyCountError, 0),
	}
	for _, id := range ids {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// 超时或取消后剩余项全部记为失败，保证 total = updated + len(errors)
			result.Errors = append(result.Errors, vo.RefreshReplyCountError{CommentID: id, Error: ctxErr.Error()})
			continue
		}
		if _, err := s.RefreshReplyCount(ctx, id); err != nil {
			s.logger.Warn("刷新单条评论回复数失败，继续处理下一条", zap.Error(err), zap.Uint64("commentID", id))
			msg := "刷新失败"
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				msg = "评论不存在或已删除"
			}
			result.Errors = append(result.Errors, vo.RefreshReplyCountError{CommentID: id, Error: msg})
			continue
		}
		result.UpdatedCount++
	}

	s.logger.Info("全量刷新回复数完成",
		zap.Int("total", result.TotalComments),
		zap.Int("updated", result.UpdatedCount),
		zap.Int("failed", len(result.Errors)))
	return result, nil
}
