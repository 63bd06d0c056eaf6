package service

import (
	"context"

	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/vo"
)

// CommentEventPublisher 评论领域事件的发布方，由 Kafka 生产者实现。
// 未配置 Kafka 时传 nil，服务层跳过发布。
type CommentEventPublisher interface {
	PublishCommentCreated(ctx context.Context, comment *entities.Comment) error
	PublishCommentApproved(ctx context.Context, comment *entities.Comment) error
	PublishCommentDeleted(ctx context.Context, postID uint64, rootID *uint64, commentIDs []uint64) error
}

// CommentBroadcaster 把新公开的评论推送给正在浏览该帖子的客户端，由 websocket Hub 实现。
type CommentBroadcaster interface {
	BroadcastApproved(comment *vo.CommentVO)
}
