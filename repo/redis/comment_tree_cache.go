package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/vo"
	"github.com/Xushengqwer/comment_service/myErrors"
)

// CommentTreeCache 缓存每个帖子的公开评论树（仅含审核通过的评论）。
// - 任何会改变公开可见内容的写操作（新增、审核、删除）都应调用 InvalidatePublicTree。
type CommentTreeCache interface {
	// GetPublicTree 未命中时返回 myErrors.ErrCacheMiss。
	GetPublicTree(ctx context.Context, postID uint64) ([]*vo.CommentTreeNode, error)
	SetPublicTree(ctx context.Context, postID uint64, tree []*vo.CommentTreeNode, ttl time.Duration) error
	InvalidatePublicTree(ctx context.Context, postID uint64) error
}

type commentTreeCacheImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewCommentTreeCache 是 commentTreeCacheImpl 的构造函数。
func NewCommentTreeCache(redisClient *redis.Client, logger *core.ZapLogger) CommentTreeCache {
	return &commentTreeCacheImpl{redisClient: redisClient, logger: logger}
}

func treeKey(postID uint64) string {
	return constant.PublicCommentTreeKeyPrefix + strconv.FormatUint(postID, 10)
}

func (c *commentTreeCacheImpl) GetPublicTree(ctx context.Context, postID uint64) ([]*vo.CommentTreeNode, error) {
	key := treeKey(postID)
	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErrors.ErrCacheMiss
		}
		c.logger.Error("从 Redis 获取评论树失败", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("获取评论树缓存(key: %s)失败: %w", key, err)
	}

	var tree []*vo.CommentTreeNode
	if err := json.Unmarshal(data, &tree); err != nil {
		// 缓存内容损坏时按未命中处理，由调用方回源重建
		c.logger.Warn("评论树缓存反序列化失败，按未命中处理", zap.Error(err), zap.String("key", key))
		return nil, myErrors.ErrCacheMiss
	}
	return tree, nil
}

func (c *commentTreeCacheImpl) SetPublicTree(ctx context.Context, postID uint64, tree []*vo.CommentTreeNode, ttl time.Duration) error {
	key := treeKey(postID)
	data, err := json.Marshal(tree)
	if err != nil {
		c.logger.Error("序列化评论树失败", zap.Error(err), zap.Uint64("postID", postID))
		return fmt.Errorf("序列化评论树失败: %w", err)
	}
	if err := c.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("写入评论树缓存失败", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("写入评论树缓存(key: %s)失败: %w", key, err)
	}
	c.logger.Debug("评论树已缓存", zap.String("key", key), zap.Int("topLevel", len(tree)))
	return nil
}

func (c *commentTreeCacheImpl) InvalidatePublicTree(ctx context.Context, postID uint64) error {
	key := treeKey(postID)
	if err := c.redisClient.Del(ctx, key).Err(); err != nil {
		c.logger.Error("删除评论树缓存失败", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("删除评论树缓存(key: %s)失败: %w", key, err)
	}
	return nil
}
