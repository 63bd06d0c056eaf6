package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/models/events"
	"github.com/Xushengqwer/comment_service/service"
)

// CommentCreatedHandler 新回复保存后刷新其顶层祖先的回复数
type CommentCreatedHandler struct {
	logger       *core.ZapLogger
	replyCounter service.ReplyCounter
}

func NewCommentCreatedHandler(logger *core.ZapLogger, replyCounter service.ReplyCounter) *CommentCreatedHandler {
	return &CommentCreatedHandler{logger: logger, replyCounter: replyCounter}
}

func (h *CommentCreatedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var event events.CommentCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("反序列化评论创建事件失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil
	}
	// 顶层评论本身没有回复，不影响任何计数
	if event.Comment.ParentID == nil {
		return nil
	}

	if err := h.replyCounter.RefreshForComment(ctx, event.Comment.ID); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			// 事件到达前评论已被删除，删除事件会负责刷新
			h.logger.Warn("评论已不存在，跳过回复数刷新", zap.String("event_id", event.EventID), zap.Uint64("commentID", event.Comment.ID))
			return nil
		}
		return fmt.Errorf("刷新评论(ID: %d)所属顶层评论回复数失败: %w", event.Comment.ID, err)
	}
	h.logger.Debug("已根据评论创建事件刷新回复数", zap.String("event_id", event.EventID), zap.Uint64("commentID", event.Comment.ID))
	return nil
}

// CommentDeletedHandler 删除回复后刷新存活的顶层祖先
type CommentDeletedHandler struct {
	logger       *core.ZapLogger
	replyCounter service.ReplyCounter
}

func NewCommentDeletedHandler(logger *core.ZapLogger, replyCounter service.ReplyCounter) *CommentDeletedHandler {
	return &CommentDeletedHandler{logger: logger, replyCounter: replyCounter}
}

func (h *CommentDeletedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var event events.CommentDeletedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("反序列化评论删除事件失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil
	}
	if event.RootID == nil {
		return nil
	}

	count, err := h.replyCounter.RefreshReplyCount(ctx, *event.RootID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil
		}
		return fmt.Errorf("刷新顶层评论(ID: %d)回复数失败: %w", *event.RootID, err)
	}
	h.logger.Debug("已根据评论删除事件刷新回复数",
		zap.String("event_id", event.EventID),
		zap.Uint64("rootID", *event.RootID),
		zap.Int("replyCount", count))
	return nil
}
