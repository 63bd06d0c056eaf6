package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
)

// Comment 评论实体
// - 扁平存储，通过 ParentID 自引用形成回复链，ParentID 为 nil 表示顶层评论
// - 表名: comments
type Comment struct {
	entities.BaseModel // 包含 ID, CreatedAt, UpdatedAt, DeletedAt

	// 所属帖子，创建后不可修改；回复总是继承父评论的 PostID
	PostID uint64 `gorm:"not null;index"`

	// 父评论 ID，可以指向任意祖先评论而不仅是顶层评论
	ParentID *uint64 `gorm:"index"`

	AuthorName    string `gorm:"type:varchar(50);not null"`
	AuthorEmail   string `gorm:"type:varchar(100);not null"`
	AuthorWebsite string `gorm:"type:varchar(255)"`

	// 原始内容（Markdown），渲染后的 HTML 只出现在响应中，不落库
	Content string `gorm:"type:text;not null"`

	// 来源信息，由服务端从请求中采集，不接受客户端传入
	AuthorIP  string `gorm:"type:varchar(64)"`
	UserAgent string `gorm:"type:varchar(512)"`

	// 审核状态：公开提交默认 false，管理员回复默认 true
	IsApproved   bool `gorm:"not null;default:false;index"`
	IsAdminReply bool `gorm:"not null;default:false"`

	// 冗余的回复总数，仅对顶层评论有意义，统计全部后代而非直接子评论。
	// 由修复任务刷新，允许短暂不一致。
	ReplyCount int `gorm:"not null;default:0"`
}

// IsTopLevel 是否为顶层评论
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}
