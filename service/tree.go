package service

import (
	"sort"

	"github.com/Xushengqwer/comment_service/constant"
	"github.com/Xushengqwer/comment_service/models/vo"
)

// BuildCommentTree 把平铺的评论列表组装成两层结构：
// 每条顶层评论下挂它的全部后代（不论嵌套多深），按创建时间正序排成一个回复列表。
//
//   - 顶层评论保持输入中的先后顺序。
//   - 没有回复的顶层评论得到空切片而不是 nil。
//   - 祖先链在输入中断开（父评论未通过审核或已删除）或成环的回复会被丢弃。
//   - 不修改输入，同一输入多次调用得到相同结构。
func BuildCommentTree(flat []*vo.CommentVO) []*vo.CommentTreeNode {
	byID := make(map[uint64]*vo.CommentVO, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	nodes := make([]*vo.CommentTreeNode, 0)
	nodeByID := make(map[uint64]*vo.CommentTreeNode)
	for _, c := range flat {
		if c.ParentID != nil {
			continue
		}
		if _, dup := nodeByID[c.ID]; dup {
			continue
		}
		node := &vo.CommentTreeNode{CommentVO: *c, Replies: make([]*vo.CommentVO, 0)}
		nodes = append(nodes, node)
		nodeByID[c.ID] = node
	}

	roots := make(map[uint64]uint64) // 评论 ID -> 顶层祖先 ID
	for _, c := range flat {
		if c.ParentID == nil {
			continue
		}
		rootID, ok := resolveRoot(c, byID, roots)
		if !ok {
			continue
		}
		node, ok := nodeByID[rootID]
		if !ok {
			continue
		}
		reply := *c
		node.Replies = append(node.Replies, &reply)
	}

	for _, node := range nodes {
		sort.SliceStable(node.Replies, func(i, j int) bool {
			a, b := node.Replies[i], node.Replies[j]
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})
	}
	return nodes
}

// resolveRoot 沿 parent_id 向上查找顶层祖先，结果记入 roots 供后续复用
func resolveRoot(c *vo.CommentVO, byID map[uint64]*vo.CommentVO, roots map[uint64]uint64) (uint64, bool) {
	chain := make([]uint64, 0, 4)
	seen := make(map[uint64]struct{})
	cur := c
	for cur.ParentID != nil {
		if rootID, ok := roots[cur.ID]; ok {
			return remember(roots, chain, rootID), true
		}
		if _, loop := seen[cur.ID]; loop {
			return 0, false
		}
		seen[cur.ID] = struct{}{}
		chain = append(chain, cur.ID)

		parent, ok := byID[*cur.ParentID]
		if !ok {
			return 0, false
		}
		cur = parent
	}
	return remember(roots, chain, cur.ID), true
}

func remember(roots map[uint64]uint64, chain []uint64, rootID uint64) uint64 {
	for _, id := range chain {
		roots[id] = rootID
	}
	return rootID
}

// FilterTree 在已组装的树上按 keep 过滤：顶层评论不满足时整组移除，回复逐条过滤。
// 回复先沿完整的祖先链挂到顶层评论，再过滤，因此中间某层被过滤不会连带隐藏更深的回复。
func FilterTree(nodes []*vo.CommentTreeNode, keep func(*vo.CommentVO) bool) []*vo.CommentTreeNode {
	out := make([]*vo.CommentTreeNode, 0, len(nodes))
	for _, node := range nodes {
		if !keep(&node.CommentVO) {
			continue
		}
		filtered := &vo.CommentTreeNode{CommentVO: node.CommentVO, Replies: make([]*vo.CommentVO, 0, len(node.Replies))}
		for _, reply := range node.Replies {
			if keep(reply) {
				filtered.Replies = append(filtered.Replies, reply)
			}
		}
		out = append(out, filtered)
	}
	return out
}

func isApproved(c *vo.CommentVO) bool { return c.IsApproved }

// statusFilter 把管理端的审核状态筛选值转换为过滤函数
func statusFilter(status string) func(*vo.CommentVO) bool {
	switch status {
	case constant.StatusApproved:
		return isApproved
	case constant.StatusPending:
		return func(c *vo.CommentVO) bool { return !c.IsApproved }
	default:
		return func(*vo.CommentVO) bool { return true }
	}
}
