package vo

import "time"

// CommentVO 评论视图对象。
// 公开接口不返回邮箱、IP、UA，这些字段只在管理端填充。
type CommentVO struct {
	ID            uint64    `json:"id"`
	PostID        uint64    `json:"post_id"`
	ParentID      *uint64   `json:"parent_id"`
	AuthorName    string    `json:"author_name"`
	AuthorWebsite string    `json:"author_website,omitempty"`
	Content       string    `json:"content"`
	ContentHTML   string    `json:"content_html"`
	IsApproved    bool      `json:"is_approved"`
	IsAdminReply  bool      `json:"is_admin_reply"`
	ReplyCount    int       `json:"reply_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	AuthorEmail string `json:"author_email,omitempty"`
	AuthorIP    string `json:"author_ip,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
}

// CommentTreeNode 顶层评论及其全部后代（按时间正序平铺为一层）
type CommentTreeNode struct {
	CommentVO
	Replies []*CommentVO `json:"replies"`
}

// ListCommentsResponse 管理端平铺列表
type ListCommentsResponse struct {
	List     []*CommentVO `json:"list"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// CommentTreeResponse 管理端评论树，分页以顶层评论为单位
type CommentTreeResponse struct {
	List     []*CommentTreeNode `json:"list"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// RefreshReplyCountError 单条顶层评论刷新失败的记录
type RefreshReplyCountError struct {
	CommentID uint64 `json:"comment_id"`
	Error     string `json:"error"`
}

// RefreshReplyCountResult 全量刷新回复数的结果
type RefreshReplyCountResult struct {
	TotalComments int                      `json:"total_comments"`
	UpdatedCount  int                      `json:"updated_count"`
	Errors        []RefreshReplyCountError `json:"errors"`
}

// CommentStatsVO 评论统计
type CommentStatsVO struct {
	Total    int64        `json:"total"`
	Approved int64        `json:"approved"`
	Pending  int64        `json:"pending"`
	TopLevel int64        `json:"top_level"`
	Replies  int64        `json:"replies"`
	Recent   []*CommentVO `json:"recent"`
}

// CommentSettingVO 站点评论开关
type CommentSettingVO struct {
	Enabled bool `json:"enabled"`
}

// UploadImageVO 上传结果
type UploadImageVO struct {
	URL       string `json:"url"`
	ObjectKey string `json:"object_key"`
}
