package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// ModerationGate 决定谁能看到哪些评论。
// - 公开读者只能看到审核通过的评论，且站点关闭评论时什么都看不到。
// - 管理员可以看到全部评论，并按审核状态筛选。
type ModerationGate interface {
	// PublicComments 返回帖子下审核通过的评论树。站点关闭评论时返回空切片。
	PublicComments(ctx context.Context, postID uint64) ([]*vo.CommentTreeNode, error)

	// AdminComments 管理端平铺列表。
	AdminComments(ctx context.Context, req *dto.ListCommentsRequest) (*vo.ListCommentsResponse, error)

	// AdminCommentTree 管理端评论树，以顶层评论分页，后代按同一状态筛选。
	AdminCommentTree(ctx context.Context, req *dto.ListCommentsRequest) (*vo.CommentTreeResponse, error)
}

type moderationGate struct {
	settings    SettingService
	comments    CommentService
	commentRepo mysql.CommentRepository
	treeCache   redis.CommentTreeCache
	renderer    ContentRenderer
	treeTTL     time.Duration
	logger      *core.ZapLogger
}

// NewModerationGate 创建审核门面
func NewModerationGate(
	settings SettingService,
	comments CommentService,
	commentRepo mysql.CommentRepository,
	treeCache redis.CommentTreeCache,
	renderer ContentRenderer,
	treeTTL time.Duration,
	logger *core.ZapLogger,
) ModerationGate {
	if treeTTL <= 0 {
		treeTTL = 5 * time.Minute
	}
	return &moderationGate{
		settings:    settings,
		comments:    comments,
		commentRepo: commentRepo,
		treeCache:   treeCache,
		renderer:    renderer,
		treeTTL:     treeTTL,
		logger:      logger,
	}
}

func (g *moderationGate) PublicComments(ctx context.Context, postID uint64) ([]*vo.CommentTreeNode, error) {
	enabled, err := g.settings.CommentsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取评论开关失败: %w", err)
	}
	if !enabled {
		return make([]*vo.CommentTreeNode, 0), nil
	}

	tree, err := g.treeCache.GetPublicTree(ctx, postID)
	if err == nil {
		return tree, nil
	}
	if !errors.Is(err, myErrors.ErrCacheMiss) {
		// Redis 故障不影响读取，直接回源
		g.logger.Warn("读取评论树缓存失败，回源数据库", zap.Error(err), zap.Uint64("postID", postID))
	}

	// 取全部评论组装后再过滤，已通过的深层回复不会因为中间某条待审核而丢失
	all, err := g.commentRepo.ListByPost(ctx, postID, false)
	if err != nil {
		return nil, fmt.Errorf("查询帖子(ID: %d)评论失败: %w", postID, err)
	}
	tree = FilterTree(BuildCommentTree(toCommentVOs(all, g.renderer, false)), isApproved)

	if err := g.treeCache.SetPublicTree(ctx, postID, tree, g.treeTTL); err != nil {
		g.logger.Warn("回填评论树缓存失败", zap.Error(err), zap.Uint64("postID", postID))
	}
	return tree, nil
}

func (g *moderationGate) AdminComments(ctx context.Context, req *dto.ListCommentsRequest) (*vo.ListCommentsResponse, error) {
	return g.comments.ListAll(ctx, req)
}

func (g *moderationGate) AdminCommentTree(ctx context.Context, req *dto.ListCommentsRequest) (*vo.CommentTreeResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	// 1. 分页取顶层评论
	topLevel, total, err := g.commentRepo.ListByCondition(ctx, req, true)
	if err != nil {
		return nil, fmt.Errorf("分页查询顶层评论失败: %w", err)
	}
	resp := &vo.CommentTreeResponse{
		List:     make([]*vo.CommentTreeNode, 0),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if len(topLevel) == 0 {
		return resp, nil
	}

	// 2. 取这一页顶层评论的全部后代
	rootIDs := make([]uint64, 0, len(topLevel))
	for _, c := range topLevel {
		rootIDs = append(rootIDs, c.ID)
	}
	descendantIDs, err := collectDescendantIDs(ctx, g.commentRepo, rootIDs...)
	if err != nil {
		g.logger.Error("收集评论后代失败", zap.Error(err), zap.Int("roots", len(rootIDs)))
		return nil, fmt.Errorf("收集评论后代失败: %w", err)
	}
	descendants, err := g.commentRepo.GetCommentsByIDs(ctx, descendantIDs, constant.StatusAll)
	if err != nil {
		return nil, fmt.Errorf("批量获取回复失败: %w", err)
	}

	// 3. 按完整祖先链组装，再按状态过滤回复
	flat := toCommentVOs(topLevel, g.renderer, true)
	flat = append(flat, toCommentVOs(descendants, g.renderer, true)...)
	resp.List = FilterTree(BuildCommentTree(flat), statusFilter(req.Status))
	return resp, nil
}
