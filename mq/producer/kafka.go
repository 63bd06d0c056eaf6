package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/comment_service/config"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/models/events"
)

// KafkaProducer 发布评论领域事件
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(cfg config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: cfg.Topics,
	}
}

// SendEvent 序列化事件并写入指定主题，key 用于分区（同一帖子的事件落在同一分区）
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, key string, event interface{}) error {
	if topic == "" {
		p.logger.Debug("主题未配置，跳过事件发送")
		return nil
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("序列化 Kafka 事件失败", zap.Error(err), zap.String("topic", topic))
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: eventBytes,
	})
	if err != nil {
		p.logger.Error("写入 Kafka 消息失败", zap.Error(err), zap.String("topic", topic))
		return err
	}
	p.logger.Debug("Kafka 消息已发送", zap.String("topic", topic), zap.String("key", key))
	return nil
}

func toCommentData(c *entities.Comment) events.CommentData {
	return events.CommentData{
		ID:           c.ID,
		PostID:       c.PostID,
		ParentID:     c.ParentID,
		AuthorName:   c.AuthorName,
		Content:      c.Content,
		IsApproved:   c.IsApproved,
		IsAdminReply: c.IsAdminReply,
		CreatedAt:    c.CreatedAt,
	}
}

func postKey(postID uint64) string {
	return strconv.FormatUint(postID, 10)
}

// PublishCommentCreated 发送评论创建事件
func (p *KafkaProducer) PublishCommentCreated(ctx context.Context, comment *entities.Comment) error {
	event := events.CommentCreatedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Comment:   toCommentData(comment),
	}
	return p.SendEvent(ctx, p.topics.CommentCreated, postKey(comment.PostID), event)
}

// PublishCommentApproved 发送评论审核通过事件
func (p *KafkaProducer) PublishCommentApproved(ctx context.Context, comment *entities.Comment) error {
	event := events.CommentApprovedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Comment:   toCommentData(comment),
	}
	return p.SendEvent(ctx, p.topics.CommentApproved, postKey(comment.PostID), event)
}

// PublishCommentDeleted 发送评论删除事件
func (p *KafkaProducer) PublishCommentDeleted(ctx context.Context, postID uint64, rootID *uint64, commentIDs []uint64) error {
	event := events.CommentDeletedEvent{
		EventID:    uuid.New().String(),
		Timestamp:  time.Now(),
		PostID:     postID,
		RootID:     rootID,
		CommentIDs: commentIDs,
	}
	return p.SendEvent(ctx, p.topics.CommentDeleted, postKey(postID), event)
}

// Close 刷新缓冲并关闭 writer
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
