package constant

import "time"

// 服务元信息，用于链路追踪等
const (
	ServiceName    = "comment-service"
	ServiceVersion = "1.0.0"
)

// 评论内容与作者字段的长度约束，需与 dto 中的 binding 标签保持一致
const (
	CommentContentMaxLength = 1000
	AuthorNameMaxLength     = 50
	AuthorEmailMaxLength    = 100
	AuthorWebsiteMaxLength  = 255
)

// 分页与统计默认值
const (
	DefaultPage          = 1
	DefaultPageSize      = 10
	MaxPageSize          = 100
	DefaultStatsRecent   = 5
	MaxStatsRecent       = 20
	ReplyCountBatchLimit = 500 // 广度遍历时单次 IN 查询的父 ID 上限
)

// 回复数修复任务
const (
	DefaultReplyCountCronSpec = "@every 10m"
	DefaultReplyCountTimeout  = 5 * time.Minute
)

// 站点设置键
const (
	SettingCommentsEnabled = "comments_enabled"
)

// 管理员上传的评论配图
const (
	COSObjectKeyPrefixCommentImages = "comment-images"
	MaxUploadImageSize              = 5 << 20
)

// ListStatus 管理端列表的审核状态筛选值
const (
	StatusAll      = "all"
	StatusApproved = "approved"
	StatusPending  = "pending"
)
