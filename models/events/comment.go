package events

import "time"

// CommentData 事件中携带的评论快照（不含邮箱、IP 等私有字段）
type CommentData struct {
	ID           uint64    `json:"id"`
	PostID       uint64    `json:"post_id"`
	ParentID     *uint64   `json:"parent_id,omitempty"`
	AuthorName   string    `json:"author_name"`
	Content      string    `json:"content"`
	IsApproved   bool      `json:"is_approved"`
	IsAdminReply bool      `json:"is_admin_reply"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentCreatedEvent 新评论（含管理员回复）已保存
type CommentCreatedEvent struct {
	EventID   string      `json:"event_id"`
	Timestamp time.Time   `json:"timestamp"`
	Comment   CommentData `json:"comment"`
}

// CommentApprovedEvent 评论已公开
type CommentApprovedEvent struct {
	EventID   string      `json:"event_id"`
	Timestamp time.Time   `json:"timestamp"`
	Comment   CommentData `json:"comment"`
}

// CommentDeletedEvent 评论及其后代已删除。
// RootID 为删除后仍然存在的顶层祖先，删除的就是顶层评论时为空。
type CommentDeletedEvent struct {
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	PostID     uint64    `json:"post_id"`
	RootID     *uint64   `json:"root_id,omitempty"`
	CommentIDs []uint64  `json:"comment_ids"`
}
