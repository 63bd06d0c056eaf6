package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/comment_service/models/entities"
)

// PostRepository 评论所属帖子的只读访问（创建仅供种子数据使用）。
type PostRepository interface {
	// GetPostByID 根据 ID 获取帖子，未找到时返回 commonerrors.ErrRepoNotFound。
	GetPostByID(ctx context.Context, id uint64) (*entities.Post, error)

	// CreatePost 写入一篇帖子。
	CreatePost(ctx context.Context, post *entities.Post) error
}

type postRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(db *gorm.DB, logger *core.ZapLogger) PostRepository {
	return &postRepository{db: db, logger: logger}
}

func (r *postRepository) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	var post entities.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("评论引用了不存在的帖子", zap.Uint64("postID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取帖子失败", zap.Error(err), zap.Uint64("postID", id))
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) CreatePost(ctx context.Context, post *entities.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.logger.Error("创建帖子失败", zap.Error(err), zap.String("title", post.Title))
		return err
	}
	return nil
}
