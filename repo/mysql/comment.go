package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
)

// CommentCounts 评论统计所需的聚合计数
type CommentCounts struct {
	Total    int64
	Approved int64
	TopLevel int64
}

// CommentRepository 定义了评论数据的持久化操作接口。
// - 评论以扁平表存储，层级关系只通过 parent_id 表达，树的组装在服务层完成。
type CommentRepository interface {
	// CreateComment 持久化一条新评论。
	// - db 参数允许调用方传入事务句柄，传 nil 时使用仓库自身的连接。
	CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error

	// GetCommentByID 根据主键获取评论，未找到时返回 commonerrors.ErrRepoNotFound。
	GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error)

	// GetCommentsByIDs 批量获取评论，status 取值 all / approved / pending。
	// - 结果按 created_at、id 正序返回，不存在的 ID 会被忽略。
	GetCommentsByIDs(ctx context.Context, ids []uint64, status string) ([]*entities.Comment, error)

	// ListByPost 获取某个帖子下的全部评论（含回复），按创建时间正序。
	// - onlyApproved 为 true 时只返回审核通过的评论，供公开接口使用。
	ListByPost(ctx context.Context, postID uint64, onlyApproved bool) ([]*entities.Comment, error)

	// ListByCondition 管理端分页查询，按创建时间倒序。
	// - topLevelOnly 为 true 时只查询顶层评论，用于评论树的分页。
	// - 返回当前页数据和满足条件的总数。
	ListByCondition(ctx context.Context, req *dto.ListCommentsRequest, topLevelOnly bool) ([]*entities.Comment, int64, error)

	// ListChildIDs 返回 parent_id 属于给定集合的全部评论 ID（直接子评论）。
	ListChildIDs(ctx context.Context, parentIDs []uint64) ([]uint64, error)

	// ListTopLevelIDs 返回全部顶层评论的 ID，按 ID 正序。
	ListTopLevelIDs(ctx context.Context) ([]uint64, error)

	// ListRecent 返回最近创建的 limit 条评论（不区分审核状态）。
	ListRecent(ctx context.Context, limit int) ([]*entities.Comment, error)

	// CountComments 返回总数、已审核数与顶层评论数。
	CountComments(ctx context.Context) (*CommentCounts, error)

	// UpdateApproval 更新审核状态，记录不存在时返回 commonerrors.ErrRepoNotFound。
	UpdateApproval(ctx context.Context, id uint64, approved bool) error

	// UpdateReplyCount 写入顶层评论的冗余回复数。
	UpdateReplyCount(ctx context.Context, id uint64, count int) error

	// DeleteComments 软删除给定 ID 的评论，一条都未删除时返回 commonerrors.ErrRepoNotFound。
	DeleteComments(ctx context.Context, db *gorm.DB, ids []uint64) error
}

// commentRepository 是 CommentRepository 接口的 GORM 实现，MySQL / PostgreSQL / SQLite 通用。
type commentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCommentRepository 是 commentRepository 的构造函数。
func NewCommentRepository(db *gorm.DB, logger *core.ZapLogger) CommentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// conn 优先使用调用方传入的事务句柄
func (r *commentRepository) conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx)
}

func applyStatus(q *gorm.DB, status string) *gorm.DB {
	switch status {
	case constant.StatusApproved:
		return q.Where("is_approved = ?", true)
	case constant.StatusPending:
		return q.Where("is_approved = ?", false)
	default:
		return q
	}
}

// CreateComment 实现评论的插入。
func (r *commentRepository) CreateComment(ctx context.Context, db *gorm.DB, comment *entities.Comment) error {
	if err := r.conn(ctx, db).Create(comment).Error; err != nil {
		r.logger.Error("创建评论失败", zap.Error(err), zap.Uint64("postID", comment.PostID))
		return err
	}
	r.logger.Debug("成功创建评论", zap.Uint64("commentID", comment.ID), zap.Uint64("postID", comment.PostID))
	return nil
}

// GetCommentByID 实现根据 ID 获取评论。
func (r *commentRepository) GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error) {
	var comment entities.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("尝试获取不存在的评论", zap.Uint64("id", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取评论失败", zap.Error(err), zap.Uint64("id", id))
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByIDs 按批次查询，避免 IN 列表过长。
func (r *commentRepository) GetCommentsByIDs(ctx context.Context, ids []uint64, status string) ([]*entities.Comment, error) {
	comments := make([]*entities.Comment, 0, len(ids))
	for start := 0; start < len(ids); start += constant.ReplyCountBatchLimit {
		end := min(start+constant.ReplyCountBatchLimit, len(ids))
		var batch []*entities.Comment
		q := applyStatus(r.db.WithContext(ctx).Where("id IN ?", ids[start:end]), status)
		if err := q.Order("created_at ASC, id ASC").Find(&batch).Error; err != nil {
			r.logger.Error("批量获取评论失败", zap.Error(err), zap.Int("batchSize", end-start))
			return nil, err
		}
		comments = append(comments, batch...)
	}
	return comments, nil
}

// ListByPost 实现按帖子查询全部评论。
func (r *commentRepository) ListByPost(ctx context.Context, postID uint64, onlyApproved bool) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	q := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if onlyApproved {
		q = q.Where("is_approved = ?", true)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&comments).Error; err != nil {
		r.logger.Error("按帖子查询评论失败", zap.Error(err), zap.Uint64("postID", postID), zap.Bool("onlyApproved", onlyApproved))
		return nil, err
	}
	return comments, nil
}

// ListByCondition 实现管理端分页查询。
func (r *commentRepository) ListByCondition(ctx context.Context, req *dto.ListCommentsRequest, topLevelOnly bool) ([]*entities.Comment, int64, error) {
	var comments []*entities.Comment
	dbQuery := applyStatus(r.db.WithContext(ctx).Model(&entities.Comment{}), req.Status)
	if req.PostID != nil {
		dbQuery = dbQuery.Where("post_id = ?", *req.PostID)
	}
	if topLevelOnly {
		dbQuery = dbQuery.Where("parent_id IS NULL")
	}

	// 先计算总数，此时不应用 Limit 和 Offset
	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		r.logger.Error("按条件查询评论计数失败", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return comments, 0, nil
	}

	offset := (req.Page - 1) * req.PageSize
	if err := dbQuery.Order("created_at DESC, id DESC").Limit(req.PageSize).Offset(offset).Find(&comments).Error; err != nil {
		r.logger.Error("按条件查询评论分页数据失败", zap.Error(err))
		return nil, 0, err
	}

	r.logger.Debug("按条件查询评论成功", zap.Int("page", req.Page), zap.Int("pageSize", req.PageSize), zap.Int64("total", total))
	return comments, total, nil
}

// ListChildIDs 实现直接子评论 ID 的查询。
func (r *commentRepository) ListChildIDs(ctx context.Context, parentIDs []uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	for start := 0; start < len(parentIDs); start += constant.ReplyCountBatchLimit {
		end := min(start+constant.ReplyCountBatchLimit, len(parentIDs))
		var batch []uint64
		err := r.db.WithContext(ctx).Model(&entities.Comment{}).
			Where("parent_id IN ?", parentIDs[start:end]).
			Pluck("id", &batch).Error
		if err != nil {
			r.logger.Error("查询子评论 ID 失败", zap.Error(err), zap.Int("parentCount", end-start))
			return nil, err
		}
		ids = append(ids, batch...)
	}
	return ids, nil
}

// ListTopLevelIDs 实现顶层评论 ID 的查询。
func (r *commentRepository) ListTopLevelIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&entities.Comment{}).
		Where("parent_id IS NULL").
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Error("查询顶层评论 ID 失败", zap.Error(err))
		return nil, err
	}
	return ids, nil
}

// ListRecent 实现最近评论查询。
func (r *commentRepository) ListRecent(ctx context.Context, limit int) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&comments).Error; err != nil {
		r.logger.Error("查询最近评论失败", zap.Error(err), zap.Int("limit", limit))
		return nil, err
	}
	return comments, nil
}

// CountComments 实现聚合计数。
func (r *commentRepository) CountComments(ctx context.Context) (*CommentCounts, error) {
	counts := &CommentCounts{}
	base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&entities.Comment{}) }

	if err := base().Count(&counts.Total).Error; err != nil {
		r.logger.Error("统计评论总数失败", zap.Error(err))
		return nil, err
	}
	if err := base().Where("is_approved = ?", true).Count(&counts.Approved).Error; err != nil {
		r.logger.Error("统计已审核评论数失败", zap.Error(err))
		return nil, err
	}
	if err := base().Where("parent_id IS NULL").Count(&counts.TopLevel).Error; err != nil {
		r.logger.Error("统计顶层评论数失败", zap.Error(err))
		return nil, err
	}
	return counts, nil
}

// UpdateApproval 实现审核状态更新。
func (r *commentRepository) UpdateApproval(ctx context.Context, id uint64, approved bool) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_approved": approved,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		r.logger.Error("更新评论审核状态数据库出错", zap.Error(result.Error), zap.Uint64("commentID", id), zap.Bool("approved", approved))
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新不存在或已删除评论的审核状态", zap.Uint64("commentID", id))
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// UpdateReplyCount 实现回复数写入，不修改 updated_at，避免修复任务干扰“最近更新”的语义。
func (r *commentRepository) UpdateReplyCount(ctx context.Context, id uint64, count int) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		UpdateColumn("reply_count", count)
	if result.Error != nil {
		r.logger.Error("更新评论回复数失败", zap.Error(result.Error), zap.Uint64("commentID", id), zap.Int("count", count))
		return result.Error
	}
	if result.RowsAffected == 0 {
		// MySQL 在值未变化时 RowsAffected 也为 0，这里再确认一次记录是否存在
		var exists int64
		if err := r.db.WithContext(ctx).Model(&entities.Comment{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return commonerrors.ErrRepoNotFound
		}
	}
	return nil
}

// DeleteComments 实现批量软删除。
func (r *commentRepository) DeleteComments(ctx context.Context, db *gorm.DB, ids []uint64) error {
	if len(ids) == 0 {
		return commonerrors.ErrRepoNotFound
	}
	result := r.conn(ctx, db).Where("id IN ?", ids).Delete(&entities.Comment{})
	if result.Error != nil {
		r.logger.Error("删除评论失败", zap.Error(result.Error), zap.Int("count", len(ids)))
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("尝试删除不存在或已删除的评论", zap.Uint64s("ids", ids))
		return commonerrors.ErrRepoNotFound
	}
	r.logger.Debug("成功删除评论", zap.Int64("rows", result.RowsAffected))
	return nil
}
