package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
)

// Post 评论所属的内容条目
// - 由内容管理端维护，评论服务只关心它是否存在以及是否允许评论
// - 表名: posts
type Post struct {
	entities.BaseModel

	Title string `gorm:"type:varchar(255);not null"`

	// AllowComment 单篇文章级别的评论开关，与站点级开关 comments_enabled 同时生效。
	// 不设数据库默认值：gorm 创建时会忽略零值 false，带默认值会被改写成 true。
	AllowComment bool `gorm:"not null"`
}
