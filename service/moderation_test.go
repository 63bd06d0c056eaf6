package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/dto"
	"github.com/Xushengqwer/comment_service/models/entities"
	"github.com/Xushengqwer/comment_service/repo/mysql"
)

type staticSettings struct{ enabled bool }

func (s staticSettings) CommentsEnabled(context.Context) (bool, error) { return s.enabled, nil }

func (s staticSettings) SetCommentsEnabled(context.Context, bool) error { return nil }

// countingRepo 记录按帖子查询的次数
type countingRepo struct {
	mysql.CommentRepository
	listCalls int
}

func (r *countingRepo) ListByPost(ctx context.Context, postID uint64, onlyApproved bool) ([]*entities.Comment, error) {
	r.listCalls++
	return r.CommentRepository.ListByPost(ctx, postID, onlyApproved)
}

func newTestGate(env *testEnv, enabled bool) ModerationGate {
	return NewModerationGate(staticSettings{enabled: enabled}, env.comments, env.commentRepo, env.treeCache, plainRenderer{}, 0, env.logger)
}

func TestPublicComments_DisabledReturnsEmpty(t *testing.T) {
	env := newTestEnv(t)
	post := env.createPost(t, true)
	env.insertComment(t, post.ID, nil, true)
	repo := &countingRepo{CommentRepository: env.commentRepo}
	gate := NewModerationGate(staticSettings{enabled: false}, env.comments, repo, env.treeCache, plainRenderer{}, 0, env.logger)

	tree, err := gate.PublicComments(context.Background(), post.ID)
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
	assert.Equal(t, 0, repo.listCalls)
}

func TestPublicComments_ApprovedReplyBelowPendingReply(t *testing.T) {
	env := newTestEnv(t)
	post := env.createPost(t, true)
	root := env.insertComment(t, post.ID, nil, true)
	middle := env.insertComment(t, post.ID, &root.ID, false)
	leaf := env.insertComment(t, post.ID, &middle.ID, true)

	tree, err := newTestGate(env, true).PublicComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, leaf.ID, tree[0].Replies[0].ID)
	assert.Empty(t, tree[0].Replies[0].AuthorEmail)
}

func TestPublicComments_OnlyApprovedAndCached(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, true)

	root := env.insertComment(t, post.ID, nil, true)
	env.insertComment(t, post.ID, &root.ID, false)
	approvedReply := env.insertComment(t, post.ID, &root.ID, true)
	env.insertComment(t, post.ID, nil, false)

	gate := newTestGate(env, true)
	tree, err := gate.PublicComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, root.ID, tree[0].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, approvedReply.ID, tree[0].Replies[0].ID)
	assert.Empty(t, tree[0].AuthorEmail)

	cached, ok := env.treeCache.trees[post.ID]
	require.True(t, ok)
	assert.Len(t, cached, 1)

	// 审核通过后缓存被清除，下一次读取能看到新评论
	newcomer := env.insertComment(t, post.ID, nil, false)
	require.NoError(t, env.comments.SetApproval(ctx, newcomer.ID, true))
	tree, err = gate.PublicComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, tree, 2)
}

func TestPublicComments_UnknownPostIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	tree, err := newTestGate(env, true).PublicComments(context.Background(), 777)
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestAdminCommentTree_StatusFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, true)

	approvedRoot := env.insertComment(t, post.ID, nil, true)
	pendingReply := env.insertComment(t, post.ID, &approvedRoot.ID, false)
	env.insertComment(t, post.ID, &pendingReply.ID, true)
	pendingRoot := env.insertComment(t, post.ID, nil, false)

	gate := newTestGate(env, true)

	all, err := gate.AdminCommentTree(ctx, &dto.ListCommentsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
	require.Len(t, all.List, 2)
	// 顶层按创建时间倒序
	assert.Equal(t, pendingRoot.ID, all.List[0].ID)
	assert.Equal(t, approvedRoot.ID, all.List[1].ID)
	assert.Len(t, all.List[1].Replies, 2)
	assert.NotEmpty(t, all.List[1].AuthorEmail)

	approved, err := gate.AdminCommentTree(ctx, &dto.ListCommentsRequest{Status: constant.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), approved.Total)
	require.Len(t, approved.List, 1)
	// 待审核的中间回复被筛掉，已通过的孙回复仍挂在顶层评论下
	require.Len(t, approved.List[0].Replies, 1)
	assert.True(t, approved.List[0].Replies[0].IsApproved)

	pending, err := gate.AdminCommentTree(ctx, &dto.ListCommentsRequest{Status: constant.StatusPending, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Total)
	require.Len(t, pending.List, 1)
	assert.Equal(t, pendingRoot.ID, pending.List[0].ID)
}

func TestAdminComments_DelegatesToList(t *testing.T) {
	env := newTestEnv(t)
	post := env.createPost(t, true)
	env.insertComment(t, post.ID, nil, false)

	resp, err := newTestGate(env, false).AdminComments(context.Background(), &dto.ListCommentsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, constant.DefaultPageSize, resp.PageSize)
}
