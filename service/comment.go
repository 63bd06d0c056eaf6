package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/mysql"
	"github.com/Xushengqwer/comment_service/repo/redis"
)

// eventTimeout 异步发送领域事件的超时
const eventTimeout = 5 * time.Second

// CommentService 评论的提交、查询、审核与删除。
type CommentService interface {
	// CreateComment 处理公开提交。
	// - 参数在访问存储前校验，失败返回 ValidationError。
	// - 站点关闭评论时返回 ValidationError。
	// - 帖子不存在返回 commonerrors.ErrRepoNotFound；帖子关闭评论返回 ValidationError。
	// - 指定了 parent_id 时父评论必须存在，且新评论继承父评论的 post_id。
	// - 新评论默认待审核。
	CreateComment(ctx context.Context, req *dto.CreateCommentRequest, meta dto.RequestMeta) (*vo.CommentVO, error)

	// CreateReply 管理员回复指定评论，父评论不存在返回 commonerrors.ErrRepoNotFound。
	// - 审核状态默认通过，可由请求显式指定。
	CreateReply(ctx context.Context, parentID uint64, req *dto.AdminReplyRequest, meta dto.RequestMeta) (*vo.CommentVO, error)

	// FindByID 按 ID 获取评论（管理端视图）。
	FindByID(ctx context.Context, id uint64) (*vo.CommentVO, error)

	// ListByPost 获取帖子下的全部评论，按创建时间正序。
	ListByPost(ctx context.Context, postID uint64, onlyApproved bool) ([]*vo.CommentVO, error)

	// ListAll 管理端分页查询，支持审核状态与帖子筛选，返回总数。
	ListAll(ctx context.Context, req *dto.ListCommentsRequest) (*vo.ListCommentsResponse, error)

	// SetApproval 审核评论。只允许 待审核 -> 通过；对已通过的评论传 false 返回 ValidationError。
	SetApproval(ctx context.Context, id uint64, approved bool) error

	// DeleteComment 删除评论及其全部后代，随后刷新所属顶层评论的回复数。
	DeleteComment(ctx context.Context, id uint64) error
}

type commentService struct {
	db           *gorm.DB
	commentRepo  mysql.CommentRepository
	postRepo     mysql.PostRepository
	settings     SettingService
	replyCounter ReplyCounter
	treeCache    redis.CommentTreeCache
	events       CommentEventPublisher
	broadcaster  CommentBroadcaster
	renderer     ContentRenderer
	logger       *core.ZapLogger
}

// NewCommentService 创建评论服务。events 与 broadcaster 可以为 nil。
func NewCommentService(
	db *gorm.DB,
	commentRepo mysql.CommentRepository,
	postRepo mysql.PostRepository,
	settings SettingService,
	replyCounter ReplyCounter,
	treeCache redis.CommentTreeCache,
	events CommentEventPublisher,
	broadcaster CommentBroadcaster,
	renderer ContentRenderer,
	logger *core.ZapLogger,
) CommentService {
	return &commentService{
		db:           db,
		commentRepo:  commentRepo,
		postRepo:     postRepo,
		settings:     settings,
		replyCounter: replyCounter,
		treeCache:    treeCache,
		events:       events,
		broadcaster:  broadcaster,
		renderer:     renderer,
		logger:       logger,
	}
}

func (s *commentService) CreateComment(ctx context.Context, req *dto.CreateCommentRequest, meta dto.RequestMeta) (*vo.CommentVO, error) {
	// 1. 边界校验，失败时不访问存储
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. 站点级开关，管理员回复不受影响
	enabled, err := s.settings.CommentsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取评论开关失败: %w", err)
	}
	if !enabled {
		return nil, myErrors.NewValidationError("", "站点已关闭评论")
	}

	// 3. 校验帖子存在且允许评论
	post, err := s.postRepo.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("获取帖子(ID: %d)失败: %w", req.PostID, err)
	}
	if !post.AllowComment {
		return nil, myErrors.NewValidationError("post_id", "该帖子已关闭评论")
	}

	// 4. 回复时校验父评论，并继承其 post_id
	postID := post.ID
	if req.ParentID != nil {
		parent, pErr := s.commentRepo.GetCommentByID(ctx, *req.ParentID)
		if pErr != nil {
			return nil, fmt.Errorf("获取父评论(ID: %d)失败: %w", *req.ParentID, pErr)
		}
		if parent.PostID != post.ID {
			return nil, myErrors.NewValidationError("parent_id", "父评论不属于该帖子")
		}
		postID = parent.PostID
	}

	comment := &entities.Comment{
		PostID:        postID,
		ParentID:      req.ParentID,
		AuthorName:    req.AuthorName,
		AuthorEmail:   req.AuthorEmail,
		AuthorWebsite: req.AuthorWebsite,
		Content:       req.Content,
		AuthorIP:      meta.IP,
		UserAgent:     meta.UserAgent,
		IsApproved:    false,
	}
	if err := s.commentRepo.CreateComment(ctx, nil, comment); err != nil {
		s.logger.Error("保存评论失败", zap.Error(err), zap.Uint64("postID", postID))
		return nil, fmt.Errorf("保存评论失败: %w", err)
	}
	s.logger.Info("收到新评论，等待审核", zap.Uint64("commentID", comment.ID), zap.Uint64("postID", postID))

	s.invalidateTree(ctx, postID)
	s.publishCreated(comment)
	return toCommentVO(comment, s.renderer, false), nil
}

func (s *commentService) CreateReply(ctx context.Context, parentID uint64, req *dto.AdminReplyRequest, meta dto.RequestMeta) (*vo.CommentVO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.commentRepo.GetCommentByID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("获取父评论(ID: %d)失败: %w", parentID, err)
	}

	reply := &entities.Comment{
		PostID:        parent.PostID,
		ParentID:      &parent.ID,
		AuthorName:    req.AuthorName,
		AuthorEmail:   req.AuthorEmail,
		AuthorWebsite: req.AuthorWebsite,
		Content:       req.Content,
		AuthorIP:      meta.IP,
		UserAgent:     meta.UserAgent,
		IsApproved:    req.Approved(),
		IsAdminReply:  true,
	}
	if err := s.commentRepo.CreateComment(ctx, nil, reply); err != nil {
		s.logger.Error("保存管理员回复失败", zap.Error(err), zap.Uint64("parentID", parentID))
		return nil, fmt.Errorf("保存管理员回复失败: %w", err)
	}
	s.logger.Info("管理员回复评论成功",
		zap.Uint64("commentID", reply.ID),
		zap.Uint64("parentID", parentID),
		zap.Bool("approved", reply.IsApproved))

	s.invalidateTree(ctx, reply.PostID)
	s.publishCreated(reply)
	if reply.IsApproved {
		s.publishApproved(ctx, reply)
	}
	return toCommentVO(reply, s.renderer, true), nil
}

func (s *commentService) FindByID(ctx context.Context, id uint64) (*vo.CommentVO, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("获取评论(ID: %d)失败: %w", id, err)
	}
	return toCommentVO(comment, s.renderer, true), nil
}

func (s *commentService) ListByPost(ctx context.Context, postID uint64, onlyApproved bool) ([]*vo.CommentVO, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID, onlyApproved)
	if err != nil {
		return nil, fmt.Errorf("查询帖子(ID: %d)评论失败: %w", postID, err)
	}
	return toCommentVOs(comments, s.renderer, !onlyApproved), nil
}

func (s *commentService) ListAll(ctx context.Context, req *dto.ListCommentsRequest) (*vo.ListCommentsResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	comments, total, err := s.commentRepo.ListByCondition(ctx, req, false)
	if err != nil {
		s.logger.Error("管理员查询评论列表失败", zap.Error(err), zap.Any("request", req))
		return nil, fmt.Errorf("查询评论列表失败: %w", err)
	}
	return &vo.ListCommentsResponse{
		List:     toCommentVOs(comments, s.renderer, true),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *commentService) SetApproval(ctx context.Context, id uint64, approved bool) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		return fmt.Errorf("获取评论(ID: %d)失败: %w", id, err)
	}

	switch {
	case comment.IsApproved && !approved:
		return myErrors.NewValidationError("approved", "已通过的评论不能退回待审核，如需下线请删除")
	case comment.IsApproved == approved:
		// 状态未变化，幂等返回
		return nil
	}

	if err := s.commentRepo.UpdateApproval(ctx, id, true); err != nil {
		s.logger.Error("审核评论失败", zap.Error(err), zap.Uint64("commentID", id))
		return fmt.Errorf("审核评论(ID: %d)失败: %w", id, err)
	}
	comment.IsApproved = true
	s.logger.Info("管理员审核通过评论", zap.Uint64("commentID", id), zap.Uint64("postID", comment.PostID))

	s.invalidateTree(ctx, comment.PostID)
	s.publishApproved(ctx, comment)
	return nil
}

func (s *commentService) DeleteComment(ctx context.Context, id uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		return fmt.Errorf("获取评论(ID: %d)失败: %w", id, err)
	}

	// 找到删除后仍然存活的顶层祖先，用于之后刷新回复数
	var rootID *uint64
	if !comment.IsTopLevel() {
		rid, rErr := s.findRoot(ctx, comment)
		if rErr != nil {
			s.logger.Warn("查找顶层祖先失败，跳过回复数刷新", zap.Error(rErr), zap.Uint64("commentID", id))
		} else {
			rootID = &rid
		}
	}

	// 级联删除：评论本身与全部后代在同一事务内删除，不留下孤儿回复
	var ids []uint64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		descendants, dErr := collectDescendantIDs(ctx, mysql.NewCommentRepository(tx, s.logger), id)
		if dErr != nil {
			return fmt.Errorf("收集后代评论失败: %w", dErr)
		}
		ids = append([]uint64{id}, descendants...)
		return s.commentRepo.DeleteComments(ctx, tx, ids)
	})
	if err != nil {
		s.logger.Error("删除评论事务失败", zap.Error(err), zap.Uint64("commentID", id))
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return fmt.Errorf("评论(ID: %d)不存在: %w", id, err)
		}
		return fmt.Errorf("删除评论(ID: %d)失败: %w", id, err)
	}
	s.logger.Info("管理员删除评论成功", zap.Uint64("commentID", id), zap.Int("cascade", len(ids)-1))

	if rootID != nil {
		if _, rErr := s.replyCounter.RefreshReplyCount(ctx, *rootID); rErr != nil {
			// 失败时由定时修复任务兜底
			s.logger.Warn("删除后刷新回复数失败", zap.Error(rErr), zap.Uint64("rootID", *rootID))
		}
	}

	s.invalidateTree(ctx, comment.PostID)
	s.publishDeleted(comment.PostID, rootID, ids)
	return nil
}

func (s *commentService) findRoot(ctx context.Context, comment *entities.Comment) (uint64, error) {
	seen := map[uint64]struct{}{comment.ID: {}}
	cur := comment
	for !cur.IsTopLevel() {
		if _, loop := seen[*cur.ParentID]; loop {
			return 0, fmt.Errorf("评论(ID: %d)的祖先链存在环", comment.ID)
		}
		seen[*cur.ParentID] = struct{}{}
		parent, err := s.commentRepo.GetCommentByID(ctx, *cur.ParentID)
		if err != nil {
			return 0, err
		}
		cur = parent
	}
	return cur.ID, nil
}

func (s *commentService) invalidateTree(ctx context.Context, postID uint64) {
	if err := s.treeCache.InvalidatePublicTree(ctx, postID); err != nil {
		s.logger.Warn("清除评论树缓存失败", zap.Error(err), zap.Uint64("postID", postID))
	}
}

func (s *commentService) publishCreated(comment *entities.Comment) {
	if s.events == nil {
		return
	}
	snapshot := *comment
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if err := s.events.PublishCommentCreated(ctx, &snapshot); err != nil {
			s.logger.Error("发送评论创建事件失败", zap.Error(err), zap.Uint64("commentID", snapshot.ID))
		}
	}()
}

// publishApproved 通知 Kafka 下游，并推送给正在浏览该帖子的客户端。
// 站点关闭评论时公开读者看不到评论，实时推送同样跳过。
func (s *commentService) publishApproved(ctx context.Context, comment *entities.Comment) {
	if s.broadcaster != nil {
		enabled, err := s.settings.CommentsEnabled(ctx)
		switch {
		case err != nil:
			s.logger.Warn("读取评论开关失败，跳过实时推送", zap.Error(err), zap.Uint64("commentID", comment.ID))
		case enabled:
			s.broadcaster.BroadcastApproved(toCommentVO(comment, s.renderer, false))
		}
	}
	if s.events == nil {
		return
	}
	snapshot := *comment
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if err := s.events.PublishCommentApproved(ctx, &snapshot); err != nil {
			s.logger.Error("发送评论审核通过事件失败", zap.Error(err), zap.Uint64("commentID", snapshot.ID))
		}
	}()
}

func (s *commentService) publishDeleted(postID uint64, rootID *uint64, ids []uint64) {
	if s.events == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if err := s.events.PublishCommentDeleted(ctx, postID, rootID, ids); err != nil {
			s.logger.Error("发送评论删除事件失败", zap.Error(err), zap.Uint64("postID", postID))
		}
	}()
}
