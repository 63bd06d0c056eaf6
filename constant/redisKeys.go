package constant

// Redis Key 相关常量 (导出)
const (
	// SettingCacheKeyPrefix 是站点设置缓存的 Key 前缀。
	// 示例 Key: "site_setting:comments_enabled"
	// Redis 类型: String，值为 "true" / "false"
	SettingCacheKeyPrefix = "site_setting:"

	// PublicCommentTreeKeyPrefix 是公开评论树缓存的 Key 前缀。
	// 每个帖子一份，只包含已审核通过的评论，任何写操作都会删除它。
	// 示例 Key: "comment_tree:123" (其中 123 是 postID)
	// Redis 类型: String (JSON 序列化的 []vo.CommentTreeNode)
	PublicCommentTreeKeyPrefix = "comment_tree:"
)
