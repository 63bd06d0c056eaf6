package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/events"
	"github.com/Xushengqwer/comment_service/models/vo"
)

type stubCounter struct {
	refreshedComments []uint64
	refreshedRoots    []uint64
	err               error
}

func (s *stubCounter) RefreshReplyCount(_ context.Context, id uint64) (int, error) {
	s.refreshedRoots = append(s.refreshedRoots, id)
	return 3, s.err
}

func (s *stubCounter) RefreshForComment(_ context.Context, id uint64) error {
	s.refreshedComments = append(s.refreshedComments, id)
	return s.err
}

func (s *stubCounter) RefreshAll(context.Context) (*vo.RefreshReplyCountResult, error) {
	return &vo.RefreshReplyCountResult{}, s.err
}

func newLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)
	return logger
}

func message(t *testing.T, v any) kafka.Message {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return kafka.Message{Value: b}
}

func TestCommentCreatedHandler(t *testing.T) {
	ctx := context.Background()
	counter := &stubCounter{}
	h := NewCommentCreatedHandler(newLogger(t), counter)

	require.NoError(t, h.Handle(ctx, message(t, events.CommentCreatedEvent{Comment: events.CommentData{ID: 1}})))
	assert.Empty(t, counter.refreshedComments, "顶层评论不触发刷新")

	parent := uint64(1)
	reply := events.CommentCreatedEvent{Comment: events.CommentData{ID: 2, ParentID: &parent}}
	require.NoError(t, h.Handle(ctx, message(t, reply)))
	assert.Equal(t, []uint64{2}, counter.refreshedComments)

	counter.err = commonerrors.ErrRepoNotFound
	assert.NoError(t, h.Handle(ctx, message(t, reply)))

	counter.err = errors.New("db down")
	assert.Error(t, h.Handle(ctx, message(t, reply)), "临时错误需要返回以便重试")

	assert.NoError(t, h.Handle(ctx, kafka.Message{Value: []byte("{not json")}))
}

func TestCommentDeletedHandler(t *testing.T) {
	ctx := context.Background()
	counter := &stubCounter{}
	h := NewCommentDeletedHandler(newLogger(t), counter)

	require.NoError(t, h.Handle(ctx, message(t, events.CommentDeletedEvent{PostID: 1, CommentIDs: []uint64{5}})))
	assert.Empty(t, counter.refreshedRoots, "删除顶层评论时没有需要刷新的祖先")

	root := uint64(5)
	event := events.CommentDeletedEvent{PostID: 1, RootID: &root, CommentIDs: []uint64{6, 7}}
	require.NoError(t, h.Handle(ctx, message(t, event)))
	assert.Equal(t, []uint64{5}, counter.refreshedRoots)

	counter.err = commonerrors.ErrRepoNotFound
	assert.NoError(t, h.Handle(ctx, message(t, event)))

	counter.err = errors.New("db down")
	assert.Error(t, h.Handle(ctx, message(t, event)))
}
