package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/myErrors"
	"github.com/Xushengqwer/comment_service/repo/mysql"
)

func TestRefreshReplyCount_CountsAllDescendants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, true)

	root := env.insertComment(t, post.ID, nil, true)
	a := env.insertComment(t, post.ID, &root.ID, true)
	b := env.insertComment(t, post.ID, &a.ID, false)
	env.insertComment(t, post.ID, &b.ID, true)
	env.insertComment(t, post.ID, &root.ID, false)
	other := env.insertComment(t, post.ID, nil, true)

	count, err := env.counter.RefreshReplyCount(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	stored, err := env.commentRepo.GetCommentByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.ReplyCount)

	count, err = env.counter.RefreshReplyCount(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRefreshReplyCount_RejectsReplyAndMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, true)
	root := env.insertComment(t, post.ID, nil, true)
	reply := env.insertComment(t, post.ID, &root.ID, true)

	_, err := env.counter.RefreshReplyCount(ctx, reply.ID)
	assert.True(t, myErrors.IsValidationError(err))

	_, err = env.counter.RefreshReplyCount(ctx, 9999)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

func TestRefreshForComment_ResolvesTopLevelAncestor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, true)
	root := env.insertComment(t, post.ID, nil, true)
	a := env.insertComment(t, post.ID, &root.ID, true)
	b := env.insertComment(t, post.ID, &a.ID, true)

	require.NoError(t, env.counter.RefreshForComment(ctx, b.ID))

	stored, err := env.commentRepo.GetCommentByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ReplyCount)
}

// failingCountRepo 对指定 ID 的回复数写入返回错误，其余操作透传给真实仓库
type failingCountRepo struct {
	mysql.CommentRepository
	failID uint64
}

func (r *failingCountRepo) UpdateReplyCount(ctx context.Context, id uint64, count int) error {
	if id == r.failID {
		return errors.New("db unavailable")
	}
	return r.CommentRepository.UpdateReplyCount(ctx, id, count)
}

func TestRefreshAll_ContinuesPastFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, true)

	first := env.insertComment(t, post.ID, nil, true)
	env.insertComment(t, post.ID, &first.ID, true)
	second := env.insertComment(t, post.ID, nil, true)
	third := env.insertComment(t, post.ID, nil, true)
	env.insertComment(t, post.ID, &third.ID, true)
	env.insertComment(t, post.ID, &third.ID, true)

	counter := NewReplyCounter(&failingCountRepo{CommentRepository: env.commentRepo, failID: second.ID}, env.logger)
	result, err := counter.RefreshAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalComments)
	assert.Equal(t, 2, result.UpdatedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, second.ID, result.Errors[0].CommentID)
	assert.NotEmpty(t, result.Errors[0].Error)

	stored, err := env.commentRepo.GetCommentByID(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ReplyCount)
}

func TestRefreshAll_EmptyStore(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.counter.RefreshAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalComments)
	assert.Equal(t, 0, result.UpdatedCount)
	assert.NotNil(t, result.Errors)
}

func TestRefreshAll_CancelledContextRecordsRemaining(t *testing.T) {
	env := newTestEnv(t)
	post := env.createPost(t, true)
	env.insertComment(t, post.ID, nil, true)
	env.insertComment(t, post.ID, nil, true)

	// 用未取消的 context 取出 ID 后再取消，模拟批次执行到一半超时
	ids, err := env.commentRepo.ListTopLevelIDs(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, 2)

	ctx, cancel := context.WithCancel(context.Background())
	repo := &cancelAfterListRepo{CommentRepository: env.commentRepo, cancel: cancel}
	result, err := NewReplyCounter(repo, env.logger).RefreshAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalComments)
	assert.Equal(t, 0, result.UpdatedCount)
	assert.Len(t, result.Errors, 2)
}

type cancelAfterListRepo struct {
	mysql.CommentRepository
	cancel context.CancelFunc
}

func (r *cancelAfterListRepo) ListTopLevelIDs(ctx context.Context) ([]uint64, error) {
	ids, err := r.CommentRepository.ListTopLevelIDs(ctx)
	r.cancel()
	return ids, err
}
