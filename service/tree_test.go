package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/comment_service/models/vo"
)

var treeBase = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func flatComment(id uint64, parentID *uint64, minute int) *vo.CommentVO {
	return &vo.CommentVO{
		ID:        id,
		PostID:    1,
		ParentID:  parentID,
		Content:   "c",
		CreatedAt: treeBase.Add(time.Duration(minute) * time.Minute),
	}
}

func replyIDs(node *vo.CommentTreeNode) []uint64 {
	ids := make([]uint64, 0, len(node.Replies))
	for _, r := range node.Replies {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBuildCommentTree_CollapsesDescendantsUnderTopLevel(t *testing.T) {
	// 1 <- 2 <- 3 <- 4, 5 为另一个顶层评论，6 回复 5
	flat := []*vo.CommentVO{
		flatComment(1, nil, 0),
		flatComment(2, ptr[uint64](1), 1),
		flatComment(3, ptr[uint64](2), 2),
		flatComment(4, ptr[uint64](3), 3),
		flatComment(5, nil, 4),
		flatComment(6, ptr[uint64](5), 5),
	}

	tree := BuildCommentTree(flat)

	require.Len(t, tree, 2)
	assert.Equal(t, uint64(1), tree[0].ID)
	assert.Equal(t, []uint64{2, 3, 4}, replyIDs(tree[0]))
	assert.Equal(t, uint64(5), tree[1].ID)
	assert.Equal(t, []uint64{6}, replyIDs(tree[1]))

	// 回复保留自己的 parent_id，前端据此显示“回复某人”
	require.NotNil(t, tree[0].Replies[2].ParentID)
	assert.Equal(t, uint64(3), *tree[0].Replies[2].ParentID)
}

func TestBuildCommentTree_RepliesSortedByCreatedAtThenID(t *testing.T) {
	flat := []*vo.CommentVO{
		flatComment(1, nil, 0),
		flatComment(9, ptr[uint64](1), 10),
		flatComment(4, ptr[uint64](1), 5),
		flatComment(3, ptr[uint64](1), 5),
		flatComment(2, ptr[uint64](4), 1),
	}

	tree := BuildCommentTree(flat)

	require.Len(t, tree, 1)
	assert.Equal(t, []uint64{2, 3, 4, 9}, replyIDs(tree[0]))
}

func TestBuildCommentTree_PreservesTopLevelInputOrder(t *testing.T) {
	// 管理端按时间倒序传入顶层评论，树中的顺序不应改变
	flat := []*vo.CommentVO{
		flatComment(30, nil, 30),
		flatComment(20, nil, 20),
		flatComment(10, nil, 10),
	}

	tree := BuildCommentTree(flat)

	require.Len(t, tree, 3)
	assert.Equal(t, uint64(30), tree[0].ID)
	assert.Equal(t, uint64(20), tree[1].ID)
	assert.Equal(t, uint64(10), tree[2].ID)
}

func TestBuildCommentTree_EmptyRepliesIsNonNil(t *testing.T) {
	tree := BuildCommentTree([]*vo.CommentVO{flatComment(1, nil, 0)})

	require.Len(t, tree, 1)
	assert.NotNil(t, tree[0].Replies)
	assert.Empty(t, tree[0].Replies)

	assert.NotNil(t, BuildCommentTree(nil))
}

func TestBuildCommentTree_DropsOrphansAndCycles(t *testing.T) {
	flat := []*vo.CommentVO{
		flatComment(1, nil, 0),
		flatComment(2, ptr[uint64](1), 1),
		// 父评论 100 不在输入中（未审核或已删除）
		flatComment(3, ptr[uint64](100), 2),
		// 3 的回复同样找不到顶层祖先
		flatComment(4, ptr[uint64](3), 3),
		// 7 <-> 8 成环
		flatComment(7, ptr[uint64](8), 4),
		flatComment(8, ptr[uint64](7), 5),
	}

	tree := BuildCommentTree(flat)

	require.Len(t, tree, 1)
	assert.Equal(t, []uint64{2}, replyIDs(tree[0]))
}

func TestBuildCommentTree_IdempotentAndDoesNotMutateInput(t *testing.T) {
	flat := []*vo.CommentVO{
		flatComment(1, nil, 0),
		flatComment(3, ptr[uint64](2), 2),
		flatComment(2, ptr[uint64](1), 1),
	}
	before := make([]vo.CommentVO, len(flat))
	for i, c := range flat {
		before[i] = *c
	}

	first := BuildCommentTree(flat)
	second := BuildCommentTree(flat)

	assert.Equal(t, first, second)
	for i, c := range flat {
		assert.Equal(t, before[i], *c)
	}
	// 输出中的回复是副本，修改它不影响输入
	first[0].Replies[0].Content = "changed"
	assert.Equal(t, "c", flat[2].Content)
}

func TestFilterTree_KeepsApprovedBelowPendingReply(t *testing.T) {
	// 1(通过) <- 2(待审核) <- 3(通过)；4(待审核) 为顶层
	flat := []*vo.CommentVO{
		flatComment(1, nil, 0),
		flatComment(2, ptr[uint64](1), 1),
		flatComment(3, ptr[uint64](2), 2),
		flatComment(4, nil, 3),
	}
	flat[0].IsApproved = true
	flat[2].IsApproved = true

	tree := BuildCommentTree(flat)
	filtered := FilterTree(tree, isApproved)

	require.Len(t, filtered, 1)
	assert.Equal(t, uint64(1), filtered[0].ID)
	assert.Equal(t, []uint64{3}, replyIDs(filtered[0]))

	// 原树不受影响
	require.Len(t, tree, 2)
	assert.Equal(t, []uint64{2, 3}, replyIDs(tree[0]))
}

func TestFilterTree_EmptyRepliesStayNonNil(t *testing.T) {
	flat := []*vo.CommentVO{flatComment(1, nil, 0), flatComment(2, ptr[uint64](1), 1)}
	flat[0].IsApproved = true

	filtered := FilterTree(BuildCommentTree(flat), statusFilter("approved"))
	require.Len(t, filtered, 1)
	assert.NotNil(t, filtered[0].Replies)
	assert.Empty(t, filtered[0].Replies)

	assert.Len(t, FilterTree(BuildCommentTree(flat), statusFilter("all"))[0].Replies, 1)
	assert.Empty(t, FilterTree(BuildCommentTree(flat), statusFilter("pending")))
}
